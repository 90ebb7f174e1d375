package models

import "strings"

// Signature is a known fault name tallied when it appears in a WARN or ERROR line.
type Signature string

// Known error signatures
const (
	SignatureNullPointer     Signature = "NullPointerException"
	SignatureFileNotFound    Signature = "FileNotFoundException"
	SignatureSQL             Signature = "SQLException"
	SignatureOutOfMemory     Signature = "OutOfMemoryError"
	SignatureIndexOutOfBound Signature = "ArrayIndexOutOfBoundsException"
)

var knownSignatures = []Signature{
	SignatureNullPointer,
	SignatureFileNotFound,
	SignatureSQL,
	SignatureOutOfMemory,
	SignatureIndexOutOfBound,
}

// KnownSignatures returns the fixed signature vocabulary in display order.
func KnownSignatures() []Signature {
	out := make([]Signature, len(knownSignatures))
	copy(out, knownSignatures)
	return out
}

// MatchSignatures returns every known signature occurring as a substring of line,
// in vocabulary order. Overlapping names are matched independently.
func MatchSignatures(line string) []Signature {
	var matched []Signature
	for _, s := range knownSignatures {
		if strings.Contains(line, string(s)) {
			matched = append(matched, s)
		}
	}
	return matched
}

// SignatureCounts maps every known signature to the number of flagged lines containing it.
type SignatureCounts map[Signature]int

// NewSignatureCounts returns counts with every known signature present at zero.
func NewSignatureCounts() SignatureCounts {
	counts := make(SignatureCounts, len(knownSignatures))
	for _, s := range knownSignatures {
		counts[s] = 0
	}
	return counts
}

// Add folds other into c element-wise over the fixed vocabulary.
func (c SignatureCounts) Add(other SignatureCounts) {
	for _, s := range knownSignatures {
		c[s] += other[s]
	}
}

// NonZero returns the signatures with a positive count, in vocabulary order.
func (c SignatureCounts) NonZero() []Signature {
	var out []Signature
	for _, s := range knownSignatures {
		if c[s] > 0 {
			out = append(out, s)
		}
	}
	return out
}
