// Package report renders a finished run as a Markdown or HTML document and
// writes it to disk.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/logan/internal/executor"
	"github.com/harrison/logan/internal/models"
)

// Formats accepted by Render
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Document is everything a report shows. Comparison is set only for compare runs.
type Document struct {
	Run        models.Run
	Comparison *executor.Comparison
}

// Render formats doc as Markdown, or as a standalone HTML page converted from
// the same Markdown.
func Render(doc Document, format string) ([]byte, error) {
	normalized, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}

	md := renderMarkdown(doc)
	if normalized == FormatHTML {
		return renderHTML(md)
	}
	return md, nil
}

// NormalizeFormat maps a format name to FormatMarkdown or FormatHTML.
// Matching is case-insensitive; "md" and "" mean markdown.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q, must be one of: markdown, md, html", format)
	}
}

func renderMarkdown(doc Document) []byte {
	var b bytes.Buffer
	s := doc.Run.Summary

	b.WriteString("# Logan Report\n\n")
	fmt.Fprintf(&b, "- Run ID: `%s`\n", s.RunID)
	fmt.Fprintf(&b, "- Mode: %s (%d workers)\n", s.Mode, s.Workers)
	fmt.Fprintf(&b, "- Files: %d (%d failed)\n", s.Files, s.FailedFiles)
	fmt.Fprintf(&b, "- Flagged lines: %d\n", s.LevelCounts.Flagged())
	fmt.Fprintf(&b, "- Duration: %s\n\n", s.Elapsed.Round(time.Millisecond))

	b.WriteString("## Levels\n\n| Level | Count |\n| --- | ---: |\n")
	for _, level := range models.Levels() {
		fmt.Fprintf(&b, "| %s | %d |\n", level, s.LevelCounts[level])
	}

	b.WriteString("\n## Signatures\n\n| Signature | Count |\n| --- | ---: |\n")
	for _, sig := range models.KnownSignatures() {
		fmt.Fprintf(&b, "| %s | %d |\n", sig, s.SignatureCounts[sig])
	}

	if cmp := doc.Comparison; cmp != nil {
		b.WriteString("\n## Comparison\n\n| | Sequential | Parallel |\n| --- | ---: | ---: |\n")
		fmt.Fprintf(&b, "| Workers | %d | %d |\n", cmp.Sequential.Workers, cmp.Parallel.Workers)
		fmt.Fprintf(&b, "| Duration | %s | %s |\n",
			cmp.Sequential.Elapsed.Round(time.Millisecond), cmp.Parallel.Elapsed.Round(time.Millisecond))
		b.WriteString("\n")
		fmt.Fprintf(&b, "- Counts match: %s\n", yesNo(cmp.CountsMatch))
		fmt.Fprintf(&b, "- Speedup: %.2fx\n", cmp.Speedup)
		for _, src := range cmp.Mismatched {
			fmt.Fprintf(&b, "- Mismatch: %s\n", inlineCode(src))
		}
	}

	if len(doc.Run.Diagnostics) > 0 {
		b.WriteString("\n## Problems\n\n")
		for _, d := range doc.Run.Diagnostics {
			if d.Source == "" {
				fmt.Fprintf(&b, "- %s: %s\n", d.Kind, d.Message())
				continue
			}
			fmt.Fprintf(&b, "- %s (%s): %s\n", inlineCode(d.Source), d.Kind, d.Message())
		}
	}

	if len(doc.Run.Results) > 0 {
		b.WriteString("\n## Files\n")
	}
	for _, r := range doc.Run.Results {
		fmt.Fprintf(&b, "\n### %s\n\n", inlineCode(r.Source))
		for i, level := range models.Levels() {
			if i > 0 {
				b.WriteString(" · ")
			}
			fmt.Fprintf(&b, "%s %d", level, r.LevelCounts[level])
		}
		b.WriteString("\n")

		if sigs := r.SignatureCounts.NonZero(); len(sigs) > 0 {
			b.WriteString("\n")
			for _, sig := range sigs {
				fmt.Fprintf(&b, "- %s: %d\n", sig, r.SignatureCounts[sig])
			}
		}

		if len(r.FlaggedLines) > 0 {
			fence := codeFence(r.FlaggedLines)
			fmt.Fprintf(&b, "\n%s\n%s\n%s\n", fence, strings.Join(r.FlaggedLines, "\n"), fence)
		}
	}

	return b.Bytes()
}

func renderHTML(md []byte) ([]byte, error) {
	converter := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := converter.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("failed to render HTML report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Logan Report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// codeFence returns a backtick fence longer than any backtick run in lines.
func codeFence(lines []string) string {
	longest := 0
	for _, line := range lines {
		run := 0
		for _, r := range line {
			if r == '`' {
				run++
				longest = max(longest, run)
			} else {
				run = 0
			}
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

// inlineCode wraps s in a code span, widening the delimiter when s contains backticks.
func inlineCode(s string) string {
	delim := "`"
	for strings.Contains(s, delim) {
		delim += "`"
	}
	if delim == "`" {
		return delim + s + delim
	}
	return delim + " " + s + " " + delim
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
