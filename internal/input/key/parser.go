package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors. All of them indicate a violation of the textual grammar.
var (
	ErrEmptySpec           = errors.New("empty key specification")
	ErrUnterminatedBracket = errors.New("unterminated bracket in key specification")
	ErrEmptyBracket        = errors.New("empty bracket in key specification")
	ErrUnknownName         = errors.New("unknown key or modifier name")
	ErrInvalidChar         = errors.New("character not allowed outside brackets")
)

// ParseSequence parses the textual sequence grammar into a Sequence.
//
// A run of plain printable ASCII characters (excluding space, '<' and '>')
// denotes one unmodified key press per character. A bracketed token
// <MODS+KEY> denotes one chord with optional '+'-joined modifier names
// (CTRL, ALT, SHIFT, WIN) followed by a key name; SPACE, PLUS, MINUS, DEL
// and WIN are among the recognized key aliases. Whitespace separates tokens
// and is otherwise insignificant.
//
//	"gg"           two presses of g
//	"<CTRL+T>"     Ctrl+T
//	"<F1>"         F1, no modifiers
//	"3x <ALT+DEL>" '3', 'x', Alt+Delete
func ParseSequence(text string) (Sequence, error) {
	var seq Sequence

	i := 0
	for i < len(text) {
		ch := rune(text[i])
		switch {
		case unicode.IsSpace(ch):
			i++
		case ch == '<':
			end := strings.IndexByte(text[i:], '>')
			if end == -1 {
				return nil, fmt.Errorf("%w: %q", ErrUnterminatedBracket, text[i:])
			}
			inner := text[i+1 : i+end]
			chord, err := parseBracket(inner)
			if err != nil {
				return nil, err
			}
			seq = append(seq, chord)
			i += end + 1
		case ch > 0x20 && ch < 0x7F && ch != '>':
			seq = append(seq, NewRuneChord(ch, ModNone))
			i++
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidChar, ch)
		}
	}

	if len(seq) == 0 {
		return nil, ErrEmptySpec
	}
	return seq, nil
}

// ParseChord parses a specification denoting exactly one chord.
func ParseChord(spec string) (Chord, error) {
	seq, err := ParseSequence(spec)
	if err != nil {
		return Chord{}, err
	}
	if len(seq) != 1 {
		return Chord{}, fmt.Errorf("%w: %q denotes %d chords, want 1", ErrInvalidChar, spec, len(seq))
	}
	return seq[0], nil
}

// parseBracket parses the inside of a <...> token.
func parseBracket(inner string) (Chord, error) {
	if inner == "" {
		return Chord{}, ErrEmptyBracket
	}

	parts := strings.Split(inner, "+")

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		if p == "" {
			return Chord{}, fmt.Errorf("%w: empty name in %q (use PLUS for the + key)", ErrUnknownName, inner)
		}
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: modifier %q", ErrUnknownName, p)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: missing key name in %q", ErrUnknownName, inner)
	}
	return parseKeyName(keyPart, mods)
}

// parseKeyName resolves a bracket key name with already-known modifiers.
func parseKeyName(name string, mods Modifier) (Chord, error) {
	upper := strings.ToUpper(name)

	if r, ok := runeAliases[upper]; ok {
		return NewRuneChord(r, mods), nil
	}
	if k := KeyFromName(upper); k != KeyNone {
		return NewChord(k, mods), nil
	}

	// Single printable character. Letters are stored lowercase; the
	// canonical bracket form renders them uppercase.
	runes := []rune(name)
	if len(runes) == 1 {
		r := runes[0]
		if r > 0x20 && r < 0x7F {
			return NewRuneChord(unicode.ToLower(r), mods), nil
		}
	}

	return Chord{}, fmt.Errorf("%w: key %q", ErrUnknownName, name)
}

// MustParseSequence parses a sequence and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(text string) Sequence {
	seq, err := ParseSequence(text)
	if err != nil {
		panic("invalid key sequence: " + text + ": " + err.Error())
	}
	return seq
}

// MustParseChord parses a single-chord specification and panics on error.
func MustParseChord(spec string) Chord {
	chord, err := ParseChord(spec)
	if err != nil {
		panic("invalid key chord: " + spec + ": " + err.Error())
	}
	return chord
}
