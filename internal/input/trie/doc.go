// Package trie stores registered chord sequences for the matcher.
//
// Registered sequences are prefix-free: registration rejects any sequence
// that is a strict prefix of an existing one or that an existing one is a
// strict prefix of. The matcher relies on this to fire a completion the
// moment a sequence's final chord arrives, without lookahead, timeouts or an
// ambiguity window.
package trie
