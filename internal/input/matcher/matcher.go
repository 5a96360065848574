package matcher

import (
	"github.com/kmikiy/keycast/internal/input/key"
	"github.com/kmikiy/keycast/internal/input/trie"
)

// Matcher consumes one chord at a time and drives sequence recognition
// against a trie of registrations. Consume executes entirely on the calling
// goroutine with no locking; it is meant to be driven from a single input
// loop, one event at a time. There are no timeouts: a sequence stays in
// progress until a later chord, escape or reset resolves it.
type Matcher struct {
	trie    *trie.Trie
	cursor  *trie.Node
	count   countState
	history key.Sequence
	escape  key.Key
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithEscapeKey overrides the key treated as the universal cancel signal.
// The default is key.KeyEscape. It should match the trie's reserved key.
func WithEscapeKey(k key.Key) Option {
	return func(m *Matcher) { m.escape = k }
}

// New creates a matcher over the given trie, idle at its root.
func New(t *trie.Trie, opts ...Option) *Matcher {
	m := &Matcher{
		trie:   t,
		cursor: t.Root(),
		escape: key.KeyEscape,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InProgress returns true when anything has been accumulated since the last
// reset: a trie position, a numeric prefix, or logged chords.
func (m *Matcher) InProgress() bool {
	return m.cursor != m.trie.Root() || m.count.active || len(m.history) > 0
}

// Pending returns the chords seen since the last reset.
func (m *Matcher) Pending() key.Sequence {
	return m.history.Clone()
}

// PendingCount returns the numeric prefix accumulated so far.
func (m *Matcher) PendingCount() (uint32, bool) {
	return m.count.get()
}

// Consume feeds one chord through the state machine and returns the
// notifications it produced, in order. Zero or more of Progress, Abort,
// Completion and Escape may fire per call.
func (m *Matcher) Consume(c key.Chord) []Outcome {
	if c.Key == m.escape {
		return m.consumeEscape()
	}
	if digit, ok := c.Digit(); ok {
		return m.consumeDigit(c, digit)
	}
	if c.IsModifierKey() {
		// A bare modifier key-down is ignored unless a binding
		// specifically expects that key with no modifiers here.
		bare := key.NewChord(c.Key, key.ModNone)
		if _, ok := m.cursor.Child(bare); !ok {
			return nil
		}
		return m.advance(bare)
	}
	return m.advance(c)
}

// ResetSequence cancels any in-progress state, e.g. on focus loss. Unlike
// escape while idle it never signals Escape: it emits a single Abort when
// anything had been accumulated and nothing otherwise.
func (m *Matcher) ResetSequence() []Outcome {
	if !m.InProgress() {
		return nil
	}
	out := abort(m.history.Clone())
	m.reset()
	return []Outcome{out}
}

// consumeEscape aborts an in-progress sequence, or signals the idle-only
// Escape notification so the caller can run an idle action instead.
func (m *Matcher) consumeEscape() []Outcome {
	if m.InProgress() {
		out := abort(m.history.Clone())
		m.reset()
		return []Outcome{out}
	}
	return []Outcome{escapePressed()}
}

// consumeDigit accumulates the numeric prefix. A digit typed mid-sequence
// abandons the trie position silently, without disturbing the prefix or the
// history: digits restart sequence matching but keep accumulating.
func (m *Matcher) consumeDigit(c key.Chord, digit uint8) []Outcome {
	m.cursor = m.trie.Root()
	m.history = append(m.history, c)

	if !m.count.add(digit) {
		// Overflow discards the whole in-progress number rather than
		// wrapping; the digit is dropped with the rest of the state.
		out := abort(m.history.Clone())
		m.reset()
		return []Outcome{out}
	}
	return []Outcome{progress(m.history.Clone(), false)}
}

// advance looks the chord up among the cursor's children and handles the
// three cases: a match (possibly completing), a miss at the root, and a
// mid-sequence break that retries the chord from the root.
func (m *Matcher) advance(c key.Chord) []Outcome {
	if next, ok := m.cursor.Child(c); ok {
		m.cursor = next
		m.history = append(m.history, c)
		history := m.history.Clone()

		if tag, ok := next.Tag(); ok {
			count, hasCount := m.count.get()
			m.reset()
			return []Outcome{
				progress(history, true),
				completion(tag, count, hasCount),
			}
		}
		return []Outcome{progress(history, false)}
	}

	if m.cursor == m.trie.Root() {
		// No sequence was in progress, so no abort: the unmatched
		// chord is just logged. The numeric prefix is untouched.
		m.history = append(m.history, c)
		return []Outcome{progress(m.history.Clone(), false)}
	}

	// A sequence broke mid-way: abort with the pre-break history, then the
	// offending chord becomes the possible start of a brand-new sequence
	// within this same call.
	out := []Outcome{abort(m.history.Clone())}
	m.reset()
	return append(out, m.advance(c)...)
}

// reset is the silent full reset: cursor to root, prefix cleared, history
// dropped. Event-emitting resets wrap it with an explicit Abort.
func (m *Matcher) reset() {
	m.cursor = m.trie.Root()
	m.count.reset()
	m.history = nil
}
