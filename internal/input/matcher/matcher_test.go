package matcher

import (
	"strings"
	"testing"

	"github.com/kmikiy/keycast/internal/input/key"
	"github.com/kmikiy/keycast/internal/input/trie"
)

func buildTrie(t *testing.T, bindings map[string]string) *trie.Trie {
	t.Helper()
	tr := trie.New()
	for text, tag := range bindings {
		seq, err := key.ParseSequence(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		if err := tr.Register(seq, tag); err != nil {
			t.Fatalf("register %q: %v", text, err)
		}
	}
	return tr
}

func feed(t *testing.T, m *Matcher, text string) []Outcome {
	t.Helper()
	seq, err := key.ParseSequence(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	var out []Outcome
	for _, c := range seq {
		out = append(out, m.Consume(c)...)
	}
	return out
}

func kinds(outcomes []Outcome) string {
	names := make([]string, len(outcomes))
	for i, o := range outcomes {
		names[i] = o.Kind.String()
	}
	return strings.Join(names, ",")
}

func TestSingleChordCompletion(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"s": "save"}))

	out := m.Consume(key.NewRuneChord('s', key.ModNone))
	if got := kinds(out); got != "Progress,Completion" {
		t.Fatalf("kinds = %s", got)
	}
	if !out[0].Completed {
		t.Error("progress should be marked completed")
	}
	if out[1].Tag != "save" {
		t.Errorf("Tag = %v", out[1].Tag)
	}
	if out[1].HasCount {
		t.Error("no numeric prefix was typed")
	}
	if m.InProgress() {
		t.Error("completion must leave the matcher idle")
	}
}

func TestMultiChordProgress(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"multi": "m"}))

	out := feed(t, m, "mult")
	if got := kinds(out); got != "Progress,Progress,Progress,Progress" {
		t.Fatalf("kinds = %s", got)
	}
	for _, o := range out {
		if o.Completed {
			t.Errorf("%v should not be completed", o)
		}
	}
	if !m.InProgress() {
		t.Error("matcher should be mid-sequence")
	}
	if got := m.Pending().String(); got != "mult" {
		t.Errorf("Pending = %q", got)
	}

	out = feed(t, m, "i")
	if got := kinds(out); got != "Progress,Completion" {
		t.Fatalf("final kinds = %s", got)
	}
	if out[1].Tag != "m" {
		t.Errorf("Tag = %v", out[1].Tag)
	}
}

func TestEscapeAbortsInProgress(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"multi": "m"}))

	feed(t, m, "mult")
	out := m.Consume(key.NewChord(key.KeyEscape, key.ModNone))
	if got := kinds(out); got != "Abort" {
		t.Fatalf("kinds = %s", got)
	}
	if got := out[0].History.String(); got != "mult" {
		t.Errorf("abort history = %q", got)
	}
	if m.InProgress() {
		t.Error("abort must leave the matcher idle")
	}

	// A second immediate escape finds the matcher idle.
	out = m.Consume(key.NewChord(key.KeyEscape, key.ModNone))
	if got := kinds(out); got != "Escape" {
		t.Fatalf("second escape kinds = %s", got)
	}

	// The binding still works after the abort.
	out = feed(t, m, "multi")
	if got := kinds(out); got != "Progress,Progress,Progress,Progress,Progress,Completion" {
		t.Fatalf("retry kinds = %s", got)
	}
}

func TestEscapeWhileIdle(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"s": "save"}))

	out := m.Consume(key.NewChord(key.KeyEscape, key.ModNone))
	if got := kinds(out); got != "Escape" {
		t.Fatalf("kinds = %s", got)
	}
	// A modified escape is still the escape key.
	feed(t, m, "x")
	out = m.Consume(key.NewChord(key.KeyEscape, key.ModCtrl))
	if got := kinds(out); got != "Abort" {
		t.Fatalf("kinds = %s", got)
	}
}

func TestUnmatchedChordsAccumulate(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"s": "save"}))

	// Digits, then chords matching nothing: everything lands in the
	// history and escape reports the lot.
	out := feed(t, m, "1a<F1>")
	if got := kinds(out); got != "Progress,Progress,Progress" {
		t.Fatalf("kinds = %s", got)
	}
	out = m.Consume(key.NewChord(key.KeyEscape, key.ModNone))
	if got := kinds(out); got != "Abort" {
		t.Fatalf("kinds = %s", got)
	}
	if got := out[0].History.String(); got != "1a<F1>" {
		t.Errorf("abort history = %q", got)
	}
}

func TestCountAccumulation(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"x": "del"}))

	feed(t, m, "123")
	count, ok := m.PendingCount()
	if !ok || count != 123 {
		t.Fatalf("PendingCount = %d, %v", count, ok)
	}

	out := feed(t, m, "x")
	if got := kinds(out); got != "Progress,Completion" {
		t.Fatalf("kinds = %s", got)
	}
	if !out[1].HasCount || out[1].Count != 123 {
		t.Errorf("Count = %d, HasCount = %v", out[1].Count, out[1].HasCount)
	}
	if _, ok := m.PendingCount(); ok {
		t.Error("completion must clear the numeric prefix")
	}
}

func TestCountSurvivesRootMiss(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"x": "del"}))

	// An unmatched chord at the root does not discard the prefix.
	feed(t, m, "42q")
	count, ok := m.PendingCount()
	if !ok || count != 42 {
		t.Fatalf("PendingCount = %d, %v", count, ok)
	}

	out := feed(t, m, "x")
	if out[len(out)-1].Kind != KindCompletion {
		t.Fatalf("kinds = %s", kinds(out))
	}
	last := out[len(out)-1]
	if !last.HasCount || last.Count != 42 {
		t.Errorf("Count = %d, HasCount = %v", last.Count, last.HasCount)
	}
}

func TestDigitMidSequenceRestartsSilently(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"gg": "top"}))

	feed(t, m, "g")
	// A digit abandons the trie position without an abort.
	out := feed(t, m, "2")
	if got := kinds(out); got != "Progress" {
		t.Fatalf("kinds = %s", got)
	}

	// The sequence must restart from its first chord; its completion
	// carries the prefix typed mid-way.
	out = feed(t, m, "gg")
	if got := kinds(out); got != "Progress,Progress,Completion" {
		t.Fatalf("kinds = %s", got)
	}
	last := out[len(out)-1]
	if !last.HasCount || last.Count != 2 {
		t.Errorf("Count = %d, HasCount = %v", last.Count, last.HasCount)
	}
}

func TestCountOverflow(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"x": "del"}))

	// Ten 1s fit in the accumulator.
	feed(t, m, "1111111111")
	count, ok := m.PendingCount()
	if !ok || count != 1111111111 {
		t.Fatalf("PendingCount = %d, %v", count, ok)
	}

	// The eleventh overflows: the whole prefix is discarded, the digit
	// with it, and the user is told via an abort.
	out := feed(t, m, "1")
	if got := kinds(out); got != "Abort" {
		t.Fatalf("kinds = %s", got)
	}
	if m.InProgress() {
		t.Error("overflow must fully reset the matcher")
	}
	if _, ok := m.PendingCount(); ok {
		t.Error("overflow must clear the numeric prefix")
	}
}

func TestBreakThenRetry(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"gg": "top", "x": "del"}))

	feed(t, m, "g")

	t.Run("retry starts new sequence", func(t *testing.T) {
		// 'q' breaks "g.." and then misses at the root too: abort with
		// the pre-break history, progress for the fresh start.
		out := feed(t, m, "q")
		if got := kinds(out); got != "Abort,Progress" {
			t.Fatalf("kinds = %s", got)
		}
		if got := out[0].History.String(); got != "g" {
			t.Errorf("abort history = %q", got)
		}
		if got := out[1].History.String(); got != "q" {
			t.Errorf("progress history = %q", got)
		}
	})

	m2 := New(buildTrie(t, map[string]string{"gg": "top", "x": "del"}))
	feed(t, m2, "g")

	t.Run("retry completes immediately", func(t *testing.T) {
		// 'x' breaks "g.." and completes its own binding in the same call.
		out := feed(t, m2, "x")
		if got := kinds(out); got != "Abort,Progress,Completion" {
			t.Fatalf("kinds = %s", got)
		}
		if out[2].Tag != "del" {
			t.Errorf("Tag = %v", out[2].Tag)
		}
	})
}

func TestBareModifierIgnored(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"gg": "top"}))

	feed(t, m, "g")
	out := m.Consume(key.NewChord(key.KeyLeftCtrl, key.ModCtrl))
	if out != nil {
		t.Fatalf("bare modifier produced %s", kinds(out))
	}
	if got := m.Pending().String(); got != "g" {
		t.Errorf("Pending = %q, modifier key-down must not disturb it", got)
	}

	// The held modifier's real chord still matches.
	out = feed(t, m, "g")
	if got := kinds(out); got != "Progress,Completion" {
		t.Fatalf("kinds = %s", got)
	}
}

func TestBoundModifierKeyMatches(t *testing.T) {
	tr := trie.New()
	seq := key.Sequence{key.NewChord(key.KeyLeftWin, key.ModNone)}
	if err := tr.Register(seq, "menu"); err != nil {
		t.Fatalf("register: %v", err)
	}
	m := New(tr)

	// The key-down event arrives with the modifier's own bit set; the
	// matcher normalizes it to the bare chord bindings use.
	out := m.Consume(key.NewChord(key.KeyLeftWin, key.ModWin))
	if got := kinds(out); got != "Progress,Completion" {
		t.Fatalf("kinds = %s", got)
	}
	if out[1].Tag != "menu" {
		t.Errorf("Tag = %v", out[1].Tag)
	}
}

func TestResetSequence(t *testing.T) {
	m := New(buildTrie(t, map[string]string{"gg": "top"}))

	if out := m.ResetSequence(); out != nil {
		t.Fatalf("idle reset produced %s", kinds(out))
	}

	feed(t, m, "5g")
	out := m.ResetSequence()
	if got := kinds(out); got != "Abort" {
		t.Fatalf("kinds = %s", got)
	}
	if got := out[0].History.String(); got != "5g" {
		t.Errorf("abort history = %q", got)
	}
	if m.InProgress() {
		t.Error("reset must leave the matcher idle")
	}
}

func TestCustomEscapeKey(t *testing.T) {
	tr := trie.New(trie.WithReservedKey(key.KeyF12))
	seq, _ := key.ParseSequence("gg")
	if err := tr.Register(seq, "top"); err != nil {
		t.Fatalf("register: %v", err)
	}
	m := New(tr, WithEscapeKey(key.KeyF12))

	feed(t, m, "g")
	out := m.Consume(key.NewChord(key.KeyF12, key.ModNone))
	if got := kinds(out); got != "Abort" {
		t.Fatalf("kinds = %s", got)
	}

	// The default escape key is just another chord now.
	out = m.Consume(key.NewChord(key.KeyEscape, key.ModNone))
	if got := kinds(out); got != "Progress" {
		t.Fatalf("kinds = %s", got)
	}
}

func TestCountOrDefault(t *testing.T) {
	o := completion("t", 7, true)
	if got := o.CountOrDefault(1); got != 7 {
		t.Errorf("CountOrDefault = %d", got)
	}
	o = completion("t", 0, false)
	if got := o.CountOrDefault(1); got != 1 {
		t.Errorf("CountOrDefault = %d", got)
	}
}
