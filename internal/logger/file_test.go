package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/logan/internal/models"
)

func readRunLog(t *testing.T, fl *FileLogger) string {
	t.Helper()
	data, err := os.ReadFile(fl.Path())
	require.NoError(t, err)
	return string(data)
}

func TestFileLogger_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".logan", "logs")

	fl, err := NewFileLoggerWithDirAndLevel(dir, "info")
	require.NoError(t, err)
	defer fl.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileLogger_RunFileAndSymlink(t *testing.T) {
	dir := t.TempDir()
	fl, err := NewFileLoggerWithDirAndLevel(dir, "info")
	require.NoError(t, err)
	defer fl.Close()

	name := filepath.Base(fl.Path())
	assert.True(t, strings.HasPrefix(name, "run-"), "got %s", name)
	assert.True(t, strings.HasSuffix(name, ".log"), "got %s", name)

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, name, target)

	assert.Contains(t, readRunLog(t, fl), "=== Logan Run Log ===")
}

func TestFileLogger_SymlinkReplaced(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Symlink("stale.log", filepath.Join(dir, "latest.log")))

	fl, err := NewFileLoggerWithDirAndLevel(dir, "info")
	require.NoError(t, err)
	defer fl.Close()

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.Path()), target)
}

func TestFileLogger_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewFileLoggerWithDirAndLevel(filepath.Join(blocker, "logs"), "info")
	assert.Error(t, err)
}

func TestFileLogger_RecordsRun(t *testing.T) {
	fl, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "debug")
	require.NoError(t, err)
	defer fl.Close()

	r := models.NewAnalysisResult("app.log")
	r.LevelCounts[models.LevelError] = 1
	r.FlaggedLines = []string{"t ERROR SQLException boom"}
	r.SignatureCounts[models.SignatureSQL] = 1

	summary := models.NewGlobalSummary("3f2a-run", models.ModeSequential, 1)
	summary.Fold(r)
	summary.Elapsed = 20 * time.Millisecond

	fl.LogRunStart(models.ModeSequential, 1, 1)
	fl.LogFileResult(r)
	fl.LogProgress(1, 1)
	fl.LogDiagnostic(models.Diagnostic{Source: "gone.log", Kind: models.DiagnosticRead, Err: errors.New("missing")})
	fl.LogSummary(summary)

	out := readRunLog(t, fl)
	assert.Contains(t, out, "[INFO] Starting sequential analysis: 1 files, 1 workers")
	assert.Contains(t, out, "app.log: TRACE=0 DEBUG=0 INFO=0 WARN=0 ERROR=1")
	assert.Contains(t, out, "  | t ERROR SQLException boom")
	assert.Contains(t, out, "  SQLException: 1")
	assert.Contains(t, out, "[DEBUG] Progress: 1/1")
	assert.Contains(t, out, "[WARN] gone.log: read: missing")
	assert.Contains(t, out, "Run ID: 3f2a-run")
	assert.Contains(t, out, "Files: 1 (0 failed)")
	assert.Contains(t, out, "Duration: 20ms")
}

func TestFileLogger_LevelFiltering(t *testing.T) {
	fl, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "warn")
	require.NoError(t, err)
	defer fl.Close()

	fl.LogInfo("hidden info")
	fl.LogProgress(1, 2)
	fl.LogFileResult(models.NewAnalysisResult("quiet.log"))
	fl.LogError("visible error")

	out := readRunLog(t, fl)
	assert.NotContains(t, out, "hidden info")
	assert.NotContains(t, out, "Progress")
	assert.NotContains(t, out, "quiet.log")
	assert.Contains(t, out, "[ERROR] visible error")
}

func TestFileLogger_CloseTwice(t *testing.T) {
	fl, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	require.NoError(t, err)

	require.NoError(t, fl.Close())
	assert.NoError(t, fl.Close())
	assert.NotPanics(t, func() { fl.LogInfo("after close") })
}
