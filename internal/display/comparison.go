package display

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/logan/internal/executor"
)

// Comparison prints the verdict of a compare run: a green check when both
// runners agree, a red cross plus the differing files when they do not.
func Comparison(out io.Writer, cmp executor.Comparison) {
	fmt.Fprintf(out, "Sequential: %s (%d worker)\n", cmp.Sequential.Elapsed.Round(time.Millisecond), cmp.Sequential.Workers)
	fmt.Fprintf(out, "Parallel:   %s (%d workers)\n", cmp.Parallel.Elapsed.Round(time.Millisecond), cmp.Parallel.Workers)
	if cmp.Speedup > 0 {
		fmt.Fprintf(out, "Speedup:    %.2fx\n", cmp.Speedup)
	}

	if cmp.Consistent() {
		color.New(color.FgGreen).Fprint(out, "✓")
		fmt.Fprintln(out, " Sequential and parallel results are identical")
		return
	}

	color.New(color.FgRed).Fprint(out, "✗")
	if !cmp.CountsMatch {
		fmt.Fprintln(out, " Aggregate counts differ between runners")
	} else {
		fmt.Fprintln(out, " Per-file results differ between runners")
	}
	for _, src := range cmp.Mismatched {
		fmt.Fprintf(out, "    %s\n", src)
	}
}
