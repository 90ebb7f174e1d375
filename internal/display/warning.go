package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/logan/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    " + w.Message + "\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    " + w.Suggestion + "\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// EmptyInputWarning reports that no log files were found under paths.
func EmptyInputWarning(paths []string) Warning {
	return Warning{
		Title:      "No log files found",
		Message:    "The run completed with an all-zero summary.",
		Files:      paths,
		Suggestion: "Check the paths, or widen discovery with --ext and --recursive",
	}
}

// FailedFilesWarning lists the files whose contribution was replaced by zeros.
// Diagnostics without a source, such as empty input, are ignored.
func FailedFilesWarning(diags []models.Diagnostic) Warning {
	var files []string
	for _, d := range diags {
		if d.Source == "" {
			continue
		}
		files = append(files, fmt.Sprintf("%s (%s: %s)", d.Source, d.Kind, d.Message()))
	}
	return Warning{
		Title:   fmt.Sprintf("%d file(s) could not be analyzed", len(files)),
		Message: "Their counts are reported as zero; all other files were aggregated normally.",
		Files:   files,
	}
}
