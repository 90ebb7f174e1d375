// Package analyzer implements the single-file analysis shared by the
// sequential and parallel runners.
package analyzer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/harrison/logan/internal/classifier"
	"github.com/harrison/logan/internal/models"
)

// ErrInvalidEncoding is wrapped by ReadError when a line is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

// ReadError reports that a file could not be opened, read or decoded.
type ReadError struct {
	Path string
	Line int // Line number where reading stopped (0 when the open failed)
	Err  error
}

// Error implements the error interface for ReadError.
func (e *ReadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("read %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// OpenFunc opens a file for reading.
type OpenFunc func(path string) (io.ReadCloser, error)

// Analyzer reads log files line by line and classifies every line.
// It holds no per-file state and is safe for concurrent use.
type Analyzer struct {
	open OpenFunc
}

// New creates an Analyzer reading from the local filesystem.
func New() *Analyzer {
	return NewWithOpener(func(path string) (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// NewWithOpener creates an Analyzer that uses open to obtain file contents.
// A nil opener falls back to os.Open.
func NewWithOpener(open OpenFunc) *Analyzer {
	if open == nil {
		return New()
	}
	return &Analyzer{open: open}
}

// Analyze classifies every line of path and returns the accumulated result.
//
// On any open, read or decode failure the returned result is all-zero for
// path and the error is a *ReadError. Cancellation of ctx between lines is
// reported the same way. The file is closed on every path.
func (a *Analyzer) Analyze(ctx context.Context, path string) (models.AnalysisResult, error) {
	rc, err := a.open(path)
	if err != nil {
		return models.NewAnalysisResult(path), &ReadError{Path: path, Err: err}
	}
	defer rc.Close()

	result, err := AnalyzeReader(ctx, path, rc)
	if err != nil {
		return models.NewAnalysisResult(path), err
	}
	return result, nil
}

// AnalyzeReader classifies every line read from r, labelling the result with source.
// Lines may be of any length; a trailing "\n" or "\r\n" is stripped.
func AnalyzeReader(ctx context.Context, source string, r io.Reader) (models.AnalysisResult, error) {
	result := models.NewAnalysisResult(source)
	br := bufio.NewReader(r)

	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return result, &ReadError{Path: source, Line: lineNo + 1, Err: err}
		}
		if line == "" && err == io.EOF {
			return result, nil
		}

		lineNo++
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, &ReadError{Path: source, Line: lineNo, Err: ctxErr}
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if !utf8.ValidString(line) {
			return result, &ReadError{Path: source, Line: lineNo, Err: ErrInvalidEncoding}
		}

		accumulate(&result, line)
		if err == io.EOF {
			return result, nil
		}
	}
}

// accumulate folds one classified line into result.
func accumulate(result *models.AnalysisResult, line string) {
	c := classifier.Classify(line)
	if !c.Recognized() {
		return
	}

	result.LevelCounts[c.Level]++
	if !c.Flagged() {
		return
	}

	result.FlaggedLines = append(result.FlaggedLines, line)
	for _, sig := range c.Signatures {
		result.SignatureCounts[sig]++
	}
}
