package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/logan/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantLevel   models.Level
		wantSigs    []models.Signature
		wantFlagged bool
	}{
		{
			name:      "info line",
			line:      "2025-04-03T12:03:15.123 INFO  [main] started",
			wantLevel: models.LevelInfo,
		},
		{
			name:        "error with signature",
			line:        "t2 ERROR NullPointerException at X",
			wantLevel:   models.LevelError,
			wantSigs:    []models.Signature{models.SignatureNullPointer},
			wantFlagged: true,
		},
		{
			name:        "warn without signature",
			line:        "t3 WARN low disk",
			wantLevel:   models.LevelWarn,
			wantFlagged: true,
		},
		{
			name:        "warn with several signatures",
			line:        "t WARN SQLException wrapped OutOfMemoryError",
			wantLevel:   models.LevelWarn,
			wantSigs:    []models.Signature{models.SignatureSQL, models.SignatureOutOfMemory},
			wantFlagged: true,
		},
		{
			name:      "signature on non-flagged level is ignored",
			line:      "t DEBUG NullPointerException handled",
			wantLevel: models.LevelDebug,
		},
		{
			name:        "two fields only",
			line:        "t4 ERROR",
			wantLevel:   models.LevelError,
			wantFlagged: true,
		},
		{
			name:      "single field",
			line:      "garbage",
			wantLevel: models.LevelUnrecognized,
		},
		{
			name:      "empty line",
			line:      "",
			wantLevel: models.LevelUnrecognized,
		},
		{
			name:      "lowercase token",
			line:      "t error something",
			wantLevel: models.LevelUnrecognized,
		},
		{
			name:      "unknown token",
			line:      "t FATAL NullPointerException",
			wantLevel: models.LevelUnrecognized,
		},
		{
			name:      "trailing whitespace yields empty token",
			line:      "t1 ",
			wantLevel: models.LevelUnrecognized,
		},
		{
			name:      "leading whitespace",
			line:      "   INFO hello",
			wantLevel: models.LevelInfo,
		},
		{
			name:      "tabs separate fields",
			line:      "t1\tTRACE\tdetail",
			wantLevel: models.LevelTrace,
		},
		{
			name:        "vertical tab separates fields",
			line:        "t1\x0bERROR NullPointerException",
			wantLevel:   models.LevelError,
			wantSigs:    []models.Signature{models.SignatureNullPointer},
			wantFlagged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.line)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantSigs, got.Signatures)
			assert.Equal(t, tt.wantFlagged, got.Flagged())
			assert.Equal(t, tt.wantLevel != models.LevelUnrecognized, got.Recognized())
		})
	}
}
