// Package term feeds normalized chords from a terminal into the engine.
//
// It stands in for the OS keyboard hook of a desktop launcher: tcell key
// events are normalized into key.Chord values and handed to the input loop,
// and a one-line status at the bottom of the screen mirrors the pending
// sequence. Terminals never deliver bare modifier key-downs, so chords with
// a modifier key as the key itself can only come from other sources.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/kmikiy/keycast/internal/input/key"
)

// EventKind identifies a terminal event.
type EventKind uint8

const (
	// EventChord is a normalized key press.
	EventChord EventKind = iota

	// EventResize reports a terminal size change.
	EventResize

	// EventFocusLost reports the terminal losing focus.
	EventFocusLost

	// EventInterrupt reports an interrupt posted to the screen.
	EventInterrupt
)

// Event is one input event from the terminal.
type Event struct {
	Kind  EventKind
	Chord key.Chord
}

// Terminal is the tcell-backed chord source.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// New creates a terminal over a fresh tcell screen.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewWithScreen creates a terminal over an existing screen, e.g. a
// simulation screen in tests.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init takes over the terminal.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableFocus()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// PollEvent blocks until the next relevant event. Events that do not concern
// the engine (mouse, paste) are skipped.
func (t *Terminal) PollEvent() Event {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if chord, ok := chordFromKeyEvent(ev); ok {
				return Event{Kind: EventChord, Chord: chord}
			}
		case *tcell.EventResize:
			t.screen.Sync()
			return Event{Kind: EventResize}
		case *tcell.EventFocus:
			if !ev.Focused {
				return Event{Kind: EventFocusLost}
			}
		case *tcell.EventInterrupt:
			return Event{Kind: EventInterrupt}
		}
	}
}

// Interrupt unblocks a pending PollEvent, e.g. for shutdown.
func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

// SetStatus renders the pending-sequence line at the bottom of the screen.
func (t *Terminal) SetStatus(status string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if height == 0 {
		return
	}
	row := height - 1
	style := tcell.StyleDefault

	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		t.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		t.screen.SetContent(col, row, ' ', nil, style)
	}
	t.screen.Show()
}

// Beep emits the terminal bell.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// chordFromKeyEvent normalizes a tcell key event. Shift is dropped for rune
// chords since the rune already carries it.
func chordFromKeyEvent(ev *tcell.EventKey) (key.Chord, bool) {
	mods := convertMods(ev.Modifiers())

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		return key.NewRuneChord(ev.Rune(), mods.Without(key.ModShift)), true
	case tcell.KeyEsc:
		return key.NewChord(key.KeyEscape, mods), true
	case tcell.KeyEnter:
		return key.NewChord(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewChord(key.KeyTab, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewChord(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewChord(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.NewChord(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.NewChord(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewChord(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewChord(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewChord(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewChord(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewChord(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewChord(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewChord(key.KeyRight, mods), true
	default:
		if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
			return key.NewChord(key.KeyF1+key.Key(k-tcell.KeyF1), mods), true
		}
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			r := rune('a' + k - tcell.KeyCtrlA)
			return key.NewRuneChord(r, mods.With(key.ModCtrl)), true
		}
		return key.Chord{}, false
	}
}

// convertMods maps tcell modifiers onto the engine's bitmask.
func convertMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModWin)
	}
	return mods
}
