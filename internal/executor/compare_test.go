package executor

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/logan/internal/analyzer"
	"github.com/harrison/logan/internal/models"
)

func TestCompare_SequentialMatchesParallel(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 5; i++ {
		files = append(files, writeLogFile(t, dir, fmt.Sprintf("c%d.log", i),
			"t INFO a",
			fmt.Sprintf("t ERROR ArrayIndexOutOfBoundsException %d", i),
			"t WARN NullPointerException SQLException",
			"t TRACE x",
		))
	}
	files = append(files, filepath.Join(dir, "absent.log"))

	seq := NewSequentialRunner(analyzer.New(), nil).Run(context.Background(), files)
	par := NewCoordinator(analyzer.New(), nil, 3).Run(context.Background(), files)

	cmp := Compare(seq, par)
	assert.True(t, cmp.CountsMatch)
	assert.Empty(t, cmp.Mismatched)
	assert.True(t, cmp.Consistent())
	assert.Equal(t, seq.FlaggedLines(), par.FlaggedLines())
	assert.Equal(t, seq.Summary.LevelCounts, par.Summary.LevelCounts)
	assert.Equal(t, seq.Summary.SignatureCounts, par.Summary.SignatureCounts)
	assert.Equal(t, seq.Summary.FailedFiles, par.Summary.FailedFiles)
}

func TestCompare_DetectsDifferences(t *testing.T) {
	a := models.NewAnalysisResult("a.log")
	b := models.NewAnalysisResult("b.log")
	b2 := models.NewAnalysisResult("b.log")
	b2.LevelCounts[models.LevelWarn] = 1
	b2.FlaggedLines = []string{"t WARN x"}

	seqSummary := models.NewGlobalSummary("s", models.ModeSequential, 1)
	seqSummary.Fold(a)
	seqSummary.Fold(b)
	seqSummary.Elapsed = 100 * time.Millisecond
	parSummary := models.NewGlobalSummary("p", models.ModeParallel, 2)
	parSummary.Fold(a)
	parSummary.Fold(b2)
	parSummary.Elapsed = 25 * time.Millisecond

	cmp := Compare(
		models.Run{Summary: seqSummary, Results: []models.AnalysisResult{a, b}},
		models.Run{Summary: parSummary, Results: []models.AnalysisResult{a, b2}},
	)

	assert.False(t, cmp.CountsMatch)
	assert.Equal(t, []string{"b.log"}, cmp.Mismatched)
	assert.False(t, cmp.Consistent())
	assert.InDelta(t, 4.0, cmp.Speedup, 0.001)
}

func TestCompare_DifferentLengths(t *testing.T) {
	a := models.NewAnalysisResult("a.log")
	b := models.NewAnalysisResult("b.log")

	cmp := Compare(
		models.Run{Results: []models.AnalysisResult{a}},
		models.Run{Results: []models.AnalysisResult{a, b}},
	)

	assert.Equal(t, []string{"b.log"}, cmp.Mismatched)
	assert.Zero(t, cmp.Speedup)
}
