// Package key defines the chord value type used throughout keycast and the
// textual grammar for writing chord sequences.
//
// A Chord combines one logical key with a modifier bitmask and is treated as
// a single atomic input symbol. Chords are comparable values: two chords are
// equal iff key, rune and modifier set are equal, so they serve directly as
// map keys in the sequence trie.
//
// # Textual grammar
//
// Plain printable ASCII characters (excluding space, '<' and '>') each denote
// one unmodified press and run together:
//
//	"gg"    two presses of g
//	"q1w"   q, 1, w
//
// Bracketed tokens denote one chord with optional modifiers:
//
//	"<CTRL+S>"        Ctrl+S
//	"<CTRL+ALT+DEL>"  Ctrl+Alt+Delete
//	"<F1>"            F1
//	"<SPACE>"         the space bar
//
// ParseSequence and Sequence.String round-trip: formatting a parsed canonical
// string reproduces it exactly, and parsing a formatted chord reproduces the
// chord.
package key
