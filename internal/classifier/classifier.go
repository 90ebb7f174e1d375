// Package classifier maps a single log line to a severity level and the known
// error signatures it mentions.
//
// A line is split on runs of whitespace into at most three fields. The second
// field is the severity token and must match one of TRACE, DEBUG, INFO, WARN or
// ERROR exactly. Anything else, including lines with fewer than two fields, is
// unrecognized and contributes to no count. Classification never fails.
package classifier

import (
	"regexp"

	"github.com/harrison/logan/internal/models"
)

// fieldSeparator includes \v, which RE2's \s does not.
var fieldSeparator = regexp.MustCompile(`[\t\n\v\f\r ]+`)

// Classification is the outcome of classifying one line.
type Classification struct {
	Level      models.Level
	Signatures []models.Signature // Only populated for WARN and ERROR lines
}

// Flagged reports whether the line belongs in the flagged-line list.
func (c Classification) Flagged() bool {
	return c.Level.Flagged()
}

// Recognized reports whether the line counts toward a severity level.
func (c Classification) Recognized() bool {
	return c.Level != models.LevelUnrecognized
}

// Classify returns the classification of line.
// A leading run of whitespace yields an empty first field, so "  INFO x"
// is classified by its first visible token.
func Classify(line string) Classification {
	fields := fieldSeparator.Split(line, 3)
	if len(fields) < 2 {
		return Classification{Level: models.LevelUnrecognized}
	}

	level := models.ParseLevel(fields[1])
	if !level.Flagged() {
		return Classification{Level: level}
	}

	return Classification{
		Level:      level,
		Signatures: models.MatchSignatures(line),
	}
}
