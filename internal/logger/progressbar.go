package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ProgressBar renders how many files of a run have been drained.
type ProgressBar struct {
	completed   int
	total       int
	width       int
	enableColor bool
}

// NewProgressBar creates a bar for total files. Widths below 1 fall back to 20.
func NewProgressBar(total, width int, enableColor bool) *ProgressBar {
	if width < 1 {
		width = 20
	}
	return &ProgressBar{total: total, width: width, enableColor: enableColor}
}

// Set records the number of completed files, clamped to [0, total].
func (pb *ProgressBar) Set(completed int) {
	if completed < 0 {
		completed = 0
	}
	if completed > pb.total {
		completed = pb.total
	}
	pb.completed = completed
}

// Done reports whether every file has been drained.
func (pb *ProgressBar) Done() bool {
	return pb.total > 0 && pb.completed == pb.total
}

// Percentage returns the progress percentage (0-100)
func (pb *ProgressBar) Percentage() int {
	if pb.total <= 0 {
		return 0
	}
	return pb.completed * 100 / pb.total
}

// Render formats the bar as "[=====     ] 5/10 (50%)".
func (pb *ProgressBar) Render() string {
	perc := pb.Percentage()
	filled := perc * pb.width / 100

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	out := fmt.Sprintf("%s %d/%d (%d%%)", bar, pb.completed, pb.total, perc)

	if !pb.enableColor {
		return out
	}
	if pb.Done() {
		return color.New(color.FgGreen).Sprint(out)
	}
	return color.New(color.FgCyan).Sprint(out)
}
