package matcher

import (
	"fmt"

	"github.com/kmikiy/keycast/internal/input/key"
)

// Kind identifies the type of an Outcome.
type Kind uint8

const (
	// KindProgress reports the chord history gathered so far.
	KindProgress Kind = iota

	// KindAbort reports a broken or cancelled sequence, carrying the
	// history that was abandoned.
	KindAbort

	// KindCompletion reports a fully matched sequence with its tag and
	// optional numeric prefix.
	KindCompletion

	// KindEscape reports escape pressed while idle. It carries no payload.
	KindEscape
)

// String returns the name of the outcome kind.
func (k Kind) String() string {
	switch k {
	case KindProgress:
		return "Progress"
	case KindAbort:
		return "Abort"
	case KindCompletion:
		return "Completion"
	case KindEscape:
		return "Escape"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Outcome is one notification produced by Consume. A single Consume call may
// produce several outcomes in order, e.g. an abort followed by the progress
// of a freshly started sequence.
type Outcome struct {
	// Kind identifies the notification.
	Kind Kind

	// History holds the chords seen since the last reset. Set for
	// Progress and Abort.
	History key.Sequence

	// Completed is true for the Progress outcome emitted when a chord
	// finishes a registered sequence.
	Completed bool

	// Tag is the caller data attached at registration, returned verbatim.
	// Set for Completion.
	Tag any

	// Count is the accumulated numeric prefix. Valid only when HasCount
	// is true. Set for Completion.
	Count    uint32
	HasCount bool
}

// CountOrDefault returns the numeric prefix, or def when none was typed.
func (o Outcome) CountOrDefault(def uint32) uint32 {
	if o.HasCount {
		return o.Count
	}
	return def
}

// String returns a compact diagnostic form of the outcome.
func (o Outcome) String() string {
	switch o.Kind {
	case KindProgress:
		if o.Completed {
			return fmt.Sprintf("Progress(%s, completed)", o.History)
		}
		return fmt.Sprintf("Progress(%s)", o.History)
	case KindAbort:
		return fmt.Sprintf("Abort(%s)", o.History)
	case KindCompletion:
		if o.HasCount {
			return fmt.Sprintf("Completion(%v, count=%d)", o.Tag, o.Count)
		}
		return fmt.Sprintf("Completion(%v)", o.Tag)
	case KindEscape:
		return "Escape"
	default:
		return o.Kind.String()
	}
}

func progress(history key.Sequence, completed bool) Outcome {
	return Outcome{Kind: KindProgress, History: history, Completed: completed}
}

func abort(history key.Sequence) Outcome {
	return Outcome{Kind: KindAbort, History: history}
}

func completion(tag any, count uint32, hasCount bool) Outcome {
	return Outcome{Kind: KindCompletion, Tag: tag, Count: count, HasCount: hasCount}
}

func escapePressed() Outcome {
	return Outcome{Kind: KindEscape}
}
