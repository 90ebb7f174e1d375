// Package display provides user-facing terminal output for the logan CLI:
// warning blocks and the verdict of a compare run.
//
// Colors come from github.com/fatih/color and follow its global NoColor
// switch, so output is plain when stdout is not a terminal or NO_COLOR is set.
//
//	display.EmptyInputWarning([]string{"logs/"}).Display(os.Stderr)
//	display.FailedFilesWarning(run.Diagnostics).Display(os.Stderr)
//	display.Comparison(os.Stdout, executor.Compare(seq, par))
package display
