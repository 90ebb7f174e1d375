package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/logan/internal/executor"
	"github.com/harrison/logan/internal/models"
)

func sampleRun() models.Run {
	a := models.NewAnalysisResult("logs/a.log")
	a.LevelCounts[models.LevelInfo] = 1
	a.LevelCounts[models.LevelError] = 1
	a.FlaggedLines = []string{"t2 ERROR NullPointerException at X"}
	a.SignatureCounts[models.SignatureNullPointer] = 1

	b := models.NewAnalysisResult("logs/b.log")
	b.LevelCounts[models.LevelWarn] = 1
	b.LevelCounts[models.LevelDebug] = 1
	b.FlaggedLines = []string{"t3 WARN low disk"}

	gone := models.NewAnalysisResult("logs/gone.log")

	summary := models.NewGlobalSummary("run-42", models.ModeParallel, 4)
	summary.Fold(a)
	summary.Fold(b)
	summary.Fold(gone)
	summary.FailedFiles = 1
	summary.Elapsed = 1234567 * time.Microsecond

	return models.Run{
		Summary: summary,
		Results: []models.AnalysisResult{a, b, gone},
		Diagnostics: []models.Diagnostic{
			{Source: "logs/gone.log", Kind: models.DiagnosticRead, Err: errors.New("no such file")},
		},
	}
}

func TestRender_Markdown(t *testing.T) {
	out, err := Render(Document{Run: sampleRun()}, FormatMarkdown)
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "# Logan Report\n"))
	assert.Contains(t, md, "- Run ID: `run-42`")
	assert.Contains(t, md, "- Mode: parallel (4 workers)")
	assert.Contains(t, md, "- Files: 3 (1 failed)")
	assert.Contains(t, md, "- Flagged lines: 2")
	assert.Contains(t, md, "- Duration: 1.235s")
	assert.Contains(t, md, "| DEBUG | 1 |")
	assert.Contains(t, md, "| TRACE | 0 |")
	assert.Contains(t, md, "| NullPointerException | 1 |")
	assert.Contains(t, md, "| OutOfMemoryError | 0 |")
	assert.Contains(t, md, "- `logs/gone.log` (read): no such file")
	assert.Contains(t, md, "### `logs/a.log`")
	assert.Contains(t, md, "```\nt2 ERROR NullPointerException at X\n```")
	assert.Contains(t, md, "- NullPointerException: 1")
	assert.NotContains(t, md, "## Comparison")
}

func TestRender_DefaultsToMarkdown(t *testing.T) {
	md, err := Render(Document{Run: sampleRun()}, "")
	require.NoError(t, err)
	alias, err := Render(Document{Run: sampleRun()}, "md")
	require.NoError(t, err)
	assert.Equal(t, string(md), string(alias))
}

func TestRender_Comparison(t *testing.T) {
	run := sampleRun()
	seq := run.Summary
	seq.Mode = models.ModeSequential
	seq.Workers = 1
	seq.Elapsed = 2 * time.Second
	cmp := &executor.Comparison{
		Sequential:  seq,
		Parallel:    run.Summary,
		CountsMatch: false,
		Mismatched:  []string{"logs/b.log"},
		Speedup:     1.62,
	}

	out, err := Render(Document{Run: run, Comparison: cmp}, FormatMarkdown)
	require.NoError(t, err)
	md := string(out)

	assert.Contains(t, md, "## Comparison")
	assert.Contains(t, md, "| Workers | 1 | 4 |")
	assert.Contains(t, md, "| Duration | 2s | 1.235s |")
	assert.Contains(t, md, "- Counts match: no")
	assert.Contains(t, md, "- Speedup: 1.62x")
	assert.Contains(t, md, "- Mismatch: `logs/b.log`")
}

func TestRender_HTML(t *testing.T) {
	run := sampleRun()
	run.Results[1].FlaggedLines = []string{"t3 WARN <script>alert(1)</script>"}

	out, err := Render(Document{Run: run}, FormatHTML)
	require.NoError(t, err)
	page := string(out)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<h1>Logan Report</h1>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>NullPointerException</td>")
	assert.Contains(t, page, "&lt;script&gt;", "flagged lines are escaped")
	assert.NotContains(t, page, "<script>")
	assert.True(t, strings.HasSuffix(page, "</html>\n"))
}

func TestNormalizeFormat(t *testing.T) {
	tests := map[string]string{
		"":         FormatMarkdown,
		"md":       FormatMarkdown,
		"Markdown": FormatMarkdown,
		"HTML":     FormatHTML,
	}
	for in, want := range tests {
		got, err := NormalizeFormat(in)
		require.NoError(t, err, "NormalizeFormat(%q)", in)
		assert.Equal(t, want, got, "NormalizeFormat(%q)", in)
	}

	_, err := NormalizeFormat("pdf")
	assert.Error(t, err)
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(Document{Run: sampleRun()}, "pdf")
	assert.Error(t, err)
}

func TestRender_EmptyRun(t *testing.T) {
	run := models.Run{
		Summary:     models.NewGlobalSummary("empty", models.ModeSequential, 1),
		Diagnostics: []models.Diagnostic{{Kind: models.DiagnosticEmptyInput, Err: executor.ErrNoInputFiles}},
	}

	out, err := Render(Document{Run: run}, FormatMarkdown)
	require.NoError(t, err)
	md := string(out)

	assert.Contains(t, md, "- Files: 0 (0 failed)")
	assert.Contains(t, md, "- empty-input: "+executor.ErrNoInputFiles.Error())
	assert.NotContains(t, md, "## Files")
}

func TestCodeFence(t *testing.T) {
	assert.Equal(t, "```", codeFence([]string{"plain"}))
	assert.Equal(t, "````", codeFence([]string{"has ``` inside"}))
	assert.Equal(t, "`a`", inlineCode("a"))
	assert.Equal(t, "`` a`b ``", inlineCode("a`b"))
}
