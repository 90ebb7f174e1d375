package executor

import (
	"slices"

	"github.com/harrison/logan/internal/models"
)

// Comparison contrasts a sequential and a parallel run over the same input.
type Comparison struct {
	Sequential  models.GlobalSummary
	Parallel    models.GlobalSummary
	CountsMatch bool     // Aggregate level and signature counts are identical
	Mismatched  []string // Sources whose per-file results differ
	Speedup     float64  // Sequential elapsed / parallel elapsed, 0 when unmeasurable
}

// Consistent reports whether both runs produced identical output.
func (c Comparison) Consistent() bool {
	return c.CountsMatch && len(c.Mismatched) == 0
}

// Compare checks that seq and par agree on every count and every flagged line.
// Results are matched by position, since both runners preserve input order.
func Compare(seq, par models.Run) Comparison {
	cmp := Comparison{
		Sequential:  seq.Summary,
		Parallel:    par.Summary,
		CountsMatch: seq.Summary.SameCounts(par.Summary),
	}

	n := max(len(seq.Results), len(par.Results))
	for i := 0; i < n; i++ {
		if i >= len(seq.Results) {
			cmp.Mismatched = append(cmp.Mismatched, par.Results[i].Source)
			continue
		}
		if i >= len(par.Results) || !sameResult(seq.Results[i], par.Results[i]) {
			cmp.Mismatched = append(cmp.Mismatched, seq.Results[i].Source)
		}
	}

	if par.Summary.Elapsed > 0 {
		cmp.Speedup = float64(seq.Summary.Elapsed) / float64(par.Summary.Elapsed)
	}

	return cmp
}

func sameResult(a, b models.AnalysisResult) bool {
	if a.Source != b.Source || !slices.Equal(a.FlaggedLines, b.FlaggedLines) {
		return false
	}
	for _, l := range models.Levels() {
		if a.LevelCounts[l] != b.LevelCounts[l] {
			return false
		}
	}
	for _, s := range models.KnownSignatures() {
		if a.SignatureCounts[s] != b.SignatureCounts[s] {
			return false
		}
	}
	return true
}
