package key

import (
	"fmt"
	"strings"
)

// Key represents a logical keyboard key.
// For character keys, use KeyRune and set the Rune field in Chord.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Keypad digits
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9

	// Modifier keys as keys in their own right. A key-down of a bare
	// modifier arrives as one of these.
	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftWin
	KeyRightWin

	// KeyRune is used for character keys (letters, digits, punctuation).
	// The actual character is stored in Chord.Rune.
	KeyRune
)

// keyNames maps keys to their canonical uppercase grammar names.
var keyNames = map[Key]string{
	KeyEscape:     "ESC",
	KeyEnter:      "ENTER",
	KeyTab:        "TAB",
	KeyBackspace:  "BACKSPACE",
	KeyDelete:     "DEL",
	KeyInsert:     "INSERT",
	KeyHome:       "HOME",
	KeyEnd:        "END",
	KeyPageUp:     "PGUP",
	KeyPageDown:   "PGDN",
	KeyUp:         "UP",
	KeyDown:       "DOWN",
	KeyLeft:       "LEFT",
	KeyRight:      "RIGHT",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyF9:         "F9",
	KeyF10:        "F10",
	KeyF11:        "F11",
	KeyF12:        "F12",
	KeyKP0:        "KP0",
	KeyKP1:        "KP1",
	KeyKP2:        "KP2",
	KeyKP3:        "KP3",
	KeyKP4:        "KP4",
	KeyKP5:        "KP5",
	KeyKP6:        "KP6",
	KeyKP7:        "KP7",
	KeyKP8:        "KP8",
	KeyKP9:        "KP9",
	KeyLeftShift:  "LSHIFT",
	KeyRightShift: "RSHIFT",
	KeyLeftCtrl:   "LCTRL",
	KeyRightCtrl:  "RCTRL",
	KeyLeftAlt:    "LALT",
	KeyRightAlt:   "RALT",
	KeyLeftWin:    "WIN",
	KeyRightWin:   "RWIN",
}

// String returns the canonical grammar name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	default:
		return fmt.Sprintf("Key(%d)", k)
	}
}

// IsModifier returns true if the key itself is a modifier key
// (left/right Shift, Ctrl, Alt or Win).
func (k Key) IsModifier() bool {
	return k >= KeyLeftShift && k <= KeyRightWin
}

// IsKeypadDigit returns true if this is a keypad digit key.
func (k Key) IsKeypadDigit() bool {
	return k >= KeyKP0 && k <= KeyKP9
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// keyNameLookup maps uppercase names and aliases to Key values.
var keyNameLookup = map[string]Key{
	"ESC":       KeyEscape,
	"ESCAPE":    KeyEscape,
	"ENTER":     KeyEnter,
	"RETURN":    KeyEnter,
	"CR":        KeyEnter,
	"TAB":       KeyTab,
	"BACKSPACE": KeyBackspace,
	"BS":        KeyBackspace,
	"DEL":       KeyDelete,
	"DELETE":    KeyDelete,
	"INSERT":    KeyInsert,
	"INS":       KeyInsert,
	"HOME":      KeyHome,
	"END":       KeyEnd,
	"PGUP":      KeyPageUp,
	"PAGEUP":    KeyPageUp,
	"PGDN":      KeyPageDown,
	"PAGEDOWN":  KeyPageDown,
	"UP":        KeyUp,
	"DOWN":      KeyDown,
	"LEFT":      KeyLeft,
	"RIGHT":     KeyRight,
	"F1":        KeyF1,
	"F2":        KeyF2,
	"F3":        KeyF3,
	"F4":        KeyF4,
	"F5":        KeyF5,
	"F6":        KeyF6,
	"F7":        KeyF7,
	"F8":        KeyF8,
	"F9":        KeyF9,
	"F10":       KeyF10,
	"F11":       KeyF11,
	"F12":       KeyF12,
	"KP0":       KeyKP0,
	"KP1":       KeyKP1,
	"KP2":       KeyKP2,
	"KP3":       KeyKP3,
	"KP4":       KeyKP4,
	"KP5":       KeyKP5,
	"KP6":       KeyKP6,
	"KP7":       KeyKP7,
	"KP8":       KeyKP8,
	"KP9":       KeyKP9,
	"LSHIFT":    KeyLeftShift,
	"RSHIFT":    KeyRightShift,
	"LCTRL":     KeyLeftCtrl,
	"RCTRL":     KeyRightCtrl,
	"LALT":      KeyLeftAlt,
	"RALT":      KeyRightAlt,
	"WIN":       KeyLeftWin,
	"LWIN":      KeyLeftWin,
	"RWIN":      KeyRightWin,
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToUpper(strings.TrimSpace(name))
	if k, ok := keyNameLookup[name]; ok {
		return k
	}
	return KeyNone
}
