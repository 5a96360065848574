package key

import (
	"fmt"
	"strings"
)

// Chord is a single atomic input symbol: one logical key plus its active
// modifier set. Chords are immutable values; equality is structural, so a
// Chord can be used directly as a map key.
type Chord struct {
	// Key identifies the logical key.
	Key Key

	// Rune is the character for KeyRune chords.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier
}

// NewChord creates a chord for a special (non-character) key.
func NewChord(k Key, mods Modifier) Chord {
	return Chord{Key: k, Mods: mods}
}

// NewRuneChord creates a chord for a character key.
func NewRuneChord(r rune, mods Modifier) Chord {
	return Chord{Key: KeyRune, Rune: r, Mods: mods}
}

// IsZero returns true for the zero-value chord.
func (c Chord) IsZero() bool {
	return c.Key == KeyNone && c.Rune == 0 && c.Mods == ModNone
}

// Digit reports whether the chord is an unmodified digit, on the number row
// or the keypad, and returns its value.
func (c Chord) Digit() (uint8, bool) {
	if c.Mods != ModNone {
		return 0, false
	}
	if c.Key == KeyRune && c.Rune >= '0' && c.Rune <= '9' {
		return uint8(c.Rune - '0'), true
	}
	if c.Key.IsKeypadDigit() {
		return uint8(c.Key - KeyKP0), true
	}
	return 0, false
}

// IsPlainChar returns true for a single printable, non-bracket, non-space
// ASCII character with no modifiers. Plain characters render bare in the
// textual grammar.
func (c Chord) IsPlainChar() bool {
	if c.Key != KeyRune || c.Mods != ModNone {
		return false
	}
	return c.Rune > 0x20 && c.Rune < 0x7F && c.Rune != '<' && c.Rune != '>'
}

// IsModifierKey returns true if the chord's key is itself a modifier key.
// Used to suppress spurious matches when a bare modifier key-down occurs.
func (c Chord) IsModifierKey() bool {
	return c.Key.IsModifier()
}

// String returns the canonical textual form. Plain characters render as the
// bare character; anything else renders bracketed as <MOD+MOD+KEY> with
// uppercase names.
func (c Chord) String() string {
	if c.IsPlainChar() {
		return string(c.Rune)
	}

	var sb strings.Builder
	sb.WriteByte('<')
	if mods := c.Mods.String(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte('+')
	}
	sb.WriteString(c.bracketName())
	sb.WriteByte('>')
	return sb.String()
}

// bracketName returns the uppercase key name used inside brackets.
func (c Chord) bracketName() string {
	if c.Key != KeyRune {
		return c.Key.String()
	}
	switch c.Rune {
	case ' ':
		return "SPACE"
	case '+':
		return "PLUS"
	case '-':
		return "MINUS"
	case '<':
		return "LT"
	case '>':
		return "GT"
	}
	if c.Rune > 0x20 && c.Rune < 0x7F {
		return strings.ToUpper(string(c.Rune))
	}
	return fmt.Sprintf("U+%04X", c.Rune)
}

// runeAliases maps bracket key names to their rune values.
var runeAliases = map[string]rune{
	"SPACE": ' ',
	"PLUS":  '+',
	"MINUS": '-',
	"LT":    '<',
	"GT":    '>',
}
