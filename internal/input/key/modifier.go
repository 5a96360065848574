package key

import "strings"

// Modifier represents keyboard modifier state as a bitmask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt

	// ModWin indicates the Windows/Super key.
	ModWin
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasWin returns true if the Windows/Super key is pressed.
func (m Modifier) HasWin() bool {
	return m.Has(ModWin)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the canonical grammar form like "CTRL+ALT".
// The canonical order is CTRL, ALT, SHIFT, WIN.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "CTRL")
	}
	if m.HasAlt() {
		parts = append(parts, "ALT")
	}
	if m.HasShift() {
		parts = append(parts, "SHIFT")
	}
	if m.HasWin() {
		parts = append(parts, "WIN")
	}
	return strings.Join(parts, "+")
}

// modifierNameLookup maps uppercase modifier names to Modifier values.
var modifierNameLookup = map[string]Modifier{
	"CTRL":    ModCtrl,
	"CONTROL": ModCtrl,
	"ALT":     ModAlt,
	"SHIFT":   ModShift,
	"WIN":     ModWin,
	"SUPER":   ModWin,
	"META":    ModWin,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	name = strings.ToUpper(strings.TrimSpace(name))
	if m, ok := modifierNameLookup[name]; ok {
		return m
	}
	return ModNone
}
