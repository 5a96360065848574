package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kmikiy/keycast/internal/input/key"
)

func TestChordFromKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Chord
	}{
		{
			name: "plain rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone),
			want: key.NewRuneChord('g', key.ModNone),
		},
		{
			name: "shifted rune drops shift",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModShift),
			want: key.NewRuneChord('G', key.ModNone),
		},
		{
			name: "alt rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt),
			want: key.NewRuneChord('x', key.ModAlt),
		},
		{
			name: "escape",
			ev:   tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone),
			want: key.NewChord(key.KeyEscape, key.ModNone),
		},
		{
			name: "function key",
			ev:   tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone),
			want: key.NewChord(key.KeyF5, key.ModNone),
		},
		{
			name: "shifted function key",
			ev:   tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModShift),
			want: key.NewChord(key.KeyF1, key.ModShift),
		},
		{
			name: "ctrl letter arrives as control key",
			ev:   tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl),
			want: key.NewRuneChord('t', key.ModCtrl),
		},
		{
			name: "delete",
			ev:   tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone),
			want: key.NewChord(key.KeyDelete, key.ModNone),
		},
		{
			name: "meta maps to win",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModMeta),
			want: key.NewRuneChord('d', key.ModWin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := chordFromKeyEvent(tt.ev)
			if !ok {
				t.Fatalf("chordFromKeyEvent(%v) not handled", tt.ev)
			}
			if got != tt.want {
				t.Errorf("chordFromKeyEvent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertMods(t *testing.T) {
	tests := []struct {
		in   tcell.ModMask
		want key.Modifier
	}{
		{tcell.ModNone, key.ModNone},
		{tcell.ModCtrl, key.ModCtrl},
		{tcell.ModCtrl | tcell.ModAlt, key.ModCtrl | key.ModAlt},
		{tcell.ModShift | tcell.ModMeta, key.ModShift | key.ModWin},
	}
	for _, tt := range tests {
		if got := convertMods(tt.in); got != tt.want {
			t.Errorf("convertMods(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPollEventWithSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	term := NewWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Shutdown()

	screen.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)
	ev := term.PollEvent()
	if ev.Kind != EventChord {
		t.Fatalf("Kind = %v", ev.Kind)
	}
	if ev.Chord != key.NewRuneChord('g', key.ModNone) {
		t.Errorf("Chord = %v", ev.Chord)
	}

	term.Interrupt()
	if ev := term.PollEvent(); ev.Kind != EventInterrupt {
		t.Errorf("Kind = %v, want EventInterrupt", ev.Kind)
	}
}

func TestSetStatus(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	term := NewWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Shutdown()

	screen.SetSize(20, 5)
	term.SetStatus("3g pending")

	cells, width, height := screen.GetContents()
	row := height - 1
	got := ""
	for col := 0; col < width; col++ {
		cell := cells[row*width+col]
		if len(cell.Runes) > 0 {
			got += string(cell.Runes[0])
		}
	}
	if got[:10] != "3g pending" {
		t.Errorf("status row = %q", got)
	}
}
