// Package matcher implements the sequence recognition state machine.
//
// The matcher owns a cursor into a trie of registered sequences, a numeric
// prefix accumulator and a log of chords seen since the last reset. Feeding
// it one chord via Consume yields an ordered list of outcomes: Progress,
// Abort, Completion or Escape. Because registrations are prefix-free, a
// completion fires the instant the final chord of a sequence arrives.
//
// Two reset flavors exist deliberately. Digit-triggered and root-miss resets
// are silent (they only move the cursor), while escape, mid-sequence breaks
// and ResetSequence emit an Abort carrying the abandoned history. Collapsing
// the two would change observable behavior.
package matcher
