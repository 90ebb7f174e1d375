package models

// Level is the severity token taken from the second field of a log line.
type Level string

// Severity levels in ascending order of importance
const (
	LevelTrace Level = "TRACE"
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"

	// LevelUnrecognized marks lines that are too short or carry an unknown token.
	LevelUnrecognized Level = ""
)

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels returns the fixed severity enumeration in display order.
// The returned slice is a copy and may be modified by the caller.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// ParseLevel matches token exactly (case-sensitive) against the enumeration.
// Unknown tokens yield LevelUnrecognized.
func ParseLevel(token string) Level {
	for _, l := range levels {
		if string(l) == token {
			return l
		}
	}
	return LevelUnrecognized
}

// Flagged reports whether lines at this level are collected as WARN/ERROR lines.
func (l Level) Flagged() bool {
	return l == LevelWarn || l == LevelError
}

// Known reports whether l is part of the fixed enumeration.
func (l Level) Known() bool {
	return ParseLevel(string(l)) != LevelUnrecognized
}

// String returns the token, or "UNRECOGNIZED" for the empty level.
func (l Level) String() string {
	if l == LevelUnrecognized {
		return "UNRECOGNIZED"
	}
	return string(l)
}

// LevelCounts maps every severity level to the number of lines seen at that level.
type LevelCounts map[Level]int

// NewLevelCounts returns counts with every fixed level present at zero.
func NewLevelCounts() LevelCounts {
	counts := make(LevelCounts, len(levels))
	for _, l := range levels {
		counts[l] = 0
	}
	return counts
}

// Add folds other into c element-wise over the fixed level set.
// Keys outside the enumeration are ignored.
func (c LevelCounts) Add(other LevelCounts) {
	for _, l := range levels {
		c[l] += other[l]
	}
}

// Total returns the number of recognized lines.
func (c LevelCounts) Total() int {
	total := 0
	for _, l := range levels {
		total += c[l]
	}
	return total
}

// Flagged returns WARN + ERROR.
func (c LevelCounts) Flagged() int {
	return c[LevelWarn] + c[LevelError]
}
