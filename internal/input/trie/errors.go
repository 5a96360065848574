package trie

import "errors"

// Registration errors. They are returned synchronously from Register and
// never corrupt the trie: a failed registration leaves it exactly as it was.
var (
	// ErrInvalidSequence indicates an empty sequence was registered.
	ErrInvalidSequence = errors.New("empty key sequence")

	// ErrReservedKey indicates the escape key appears inside a sequence.
	// Escape is the universal cancel signal and can never be bound.
	ErrReservedKey = errors.New("reserved key in sequence")

	// ErrPrefixClash indicates the sequence is a strict prefix of an
	// existing registration, or an existing registration is a strict
	// prefix of it.
	ErrPrefixClash = errors.New("sequence clashes with an existing registration")
)
