// Package keymap registers textual bindings against the sequence trie.
package keymap

import (
	"fmt"

	"github.com/kmikiy/keycast/internal/config"
	"github.com/kmikiy/keycast/internal/input/key"
	"github.com/kmikiy/keycast/internal/input/trie"
	"github.com/kmikiy/keycast/internal/log"
)

// RegistrationError reports one binding that could not be registered.
// Registration of the remaining bindings continues regardless; the caller
// decides whether any failure is fatal to configuration load.
type RegistrationError struct {
	Binding config.Binding
	Err     error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("binding %q: %v", e.Binding.Keys, e.Err)
}

// Unwrap returns the underlying error.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Registry parses bindings and maintains them in a trie.
type Registry struct {
	trie   *trie.Trie
	logger *log.Logger
}

// NewRegistry creates a registry over the given trie.
func NewRegistry(t *trie.Trie, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Null
	}
	return &Registry{trie: t, logger: logger}
}

// Trie returns the underlying trie, for wiring a matcher.
func (r *Registry) Trie() *trie.Trie {
	return r.trie
}

// Register parses and registers a single binding. The dispatcher name is
// stored as the completion tag.
func (r *Registry) Register(b config.Binding) error {
	seq, err := key.ParseSequence(b.Keys)
	if err != nil {
		return err
	}
	return r.trie.Register(seq, b.Dispatcher)
}

// RegisterAll registers every binding, collecting per-entry failures
// instead of stopping at the first.
func (r *Registry) RegisterAll(bindings []config.Binding) []*RegistrationError {
	var failures []*RegistrationError
	for _, b := range bindings {
		if err := r.Register(b); err != nil {
			r.logger.Warn("skipping binding %q: %v", b.Keys, err)
			failures = append(failures, &RegistrationError{Binding: b, Err: err})
		}
	}
	return failures
}

// Unregister removes a previously registered binding. Returns false when the
// sequence was not registered.
func (r *Registry) Unregister(keys string) (bool, error) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return false, err
	}
	return r.trie.Unregister(seq), nil
}

// Reload replaces all registrations with the given bindings.
func (r *Registry) Reload(bindings []config.Binding) []*RegistrationError {
	r.trie.ClearAll()
	return r.RegisterAll(bindings)
}

// Sequences returns the registered sequences in canonical textual form.
func (r *Registry) Sequences() []string {
	seqs := r.trie.Sequences()
	out := make([]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.String()
	}
	return out
}
