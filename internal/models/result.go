package models

import (
	"slices"
	"time"
)

// AnalysisResult is the outcome of analyzing a single log file.
// It is produced once by a file analyzer and not modified afterwards.
type AnalysisResult struct {
	Source          string          // Path of the analyzed file
	LevelCounts     LevelCounts     // Lines per severity level, every level present
	FlaggedLines    []string        // WARN and ERROR lines in file order
	SignatureCounts SignatureCounts // Flagged lines per known signature, every signature present
}

// NewAnalysisResult returns an all-zero result for source.
func NewAnalysisResult(source string) AnalysisResult {
	return AnalysisResult{
		Source:          source,
		LevelCounts:     NewLevelCounts(),
		FlaggedLines:    []string{},
		SignatureCounts: NewSignatureCounts(),
	}
}

// Consistent reports whether WARN + ERROR equals the number of flagged lines.
func (r AnalysisResult) Consistent() bool {
	return r.LevelCounts.Flagged() == len(r.FlaggedLines)
}

// Empty reports whether the result contributes nothing to a summary.
func (r AnalysisResult) Empty() bool {
	return r.LevelCounts.Total() == 0 && len(r.FlaggedLines) == 0
}

// DiagnosticKind classifies a non-fatal problem surfaced during a run.
type DiagnosticKind string

// Diagnostic kinds
const (
	DiagnosticRead       DiagnosticKind = "read"        // File could not be opened, read or decoded
	DiagnosticTask       DiagnosticKind = "task"        // Task failed outside the file analyzer
	DiagnosticTimeout    DiagnosticKind = "timeout"     // Task did not finish within the drain deadline
	DiagnosticEmptyInput DiagnosticKind = "empty-input" // No input files were provided
)

// Diagnostic describes a failure whose contribution was replaced by zeros.
type Diagnostic struct {
	Source string
	Kind   DiagnosticKind
	Err    error
}

// Message returns the underlying error text, or the kind when no error is attached.
func (d Diagnostic) Message() string {
	if d.Err == nil {
		return string(d.Kind)
	}
	return d.Err.Error()
}

// Run modes
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
	ModeCompare    = "compare"
)

// GlobalSummary is the element-wise aggregate of every result in one run.
// The counts are only meaningful once every result has been folded in.
type GlobalSummary struct {
	RunID           string
	Mode            string
	Workers         int
	Files           int // Number of files submitted
	FailedFiles     int // Files whose contribution was zeroed by a diagnostic
	LevelCounts     LevelCounts
	SignatureCounts SignatureCounts
	Elapsed         time.Duration
}

// NewGlobalSummary returns a zeroed summary.
func NewGlobalSummary(runID, mode string, workers int) GlobalSummary {
	return GlobalSummary{
		RunID:           runID,
		Mode:            mode,
		Workers:         workers,
		LevelCounts:     NewLevelCounts(),
		SignatureCounts: NewSignatureCounts(),
	}
}

// Fold adds one file result into the summary.
func (s *GlobalSummary) Fold(r AnalysisResult) {
	s.Files++
	s.LevelCounts.Add(r.LevelCounts)
	s.SignatureCounts.Add(r.SignatureCounts)
}

// SameCounts reports whether both summaries carry identical aggregates.
// Identity, mode and timing are ignored.
func (s GlobalSummary) SameCounts(other GlobalSummary) bool {
	for _, l := range levels {
		if s.LevelCounts[l] != other.LevelCounts[l] {
			return false
		}
	}
	for _, sig := range knownSignatures {
		if s.SignatureCounts[sig] != other.SignatureCounts[sig] {
			return false
		}
	}
	return s.Files == other.Files
}

// Run is the complete output of one runner invocation.
type Run struct {
	Summary     GlobalSummary
	Results     []AnalysisResult // In input order
	Diagnostics []Diagnostic     // In input order
}

// FlaggedLines returns every flagged line of the run in input order.
func (r Run) FlaggedLines() []string {
	var lines []string
	for _, res := range r.Results {
		lines = append(lines, res.FlaggedLines...)
	}
	return lines
}

// FailedSources returns the sources that produced a diagnostic.
func (r Run) FailedSources() []string {
	var out []string
	for _, d := range r.Diagnostics {
		if d.Source != "" && !slices.Contains(out, d.Source) {
			out = append(out, d.Source)
		}
	}
	return out
}
