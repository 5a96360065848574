package key

import "strings"

// Sequence is an ordered list of chords that, when matched in full,
// identifies a registered command.
type Sequence []Chord

// IsEmpty returns true if the sequence has no chords.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// String returns the canonical textual form of the sequence: plain
// characters run together, bracketed tokens for everything else.
func (s Sequence) String() string {
	var sb strings.Builder
	for _, c := range s {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Equal returns true if two sequences contain the same chords in order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, c := range s {
		if c != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if s starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, c := range prefix {
		if c != s[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
