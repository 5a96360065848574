package trie

import (
	"fmt"
	"sort"

	"github.com/kmikiy/keycast/internal/input/key"
	"github.com/kmikiy/keycast/internal/log"
)

// Node is one position in the trie. Nodes are owned exclusively by their
// parent; the matcher only ever holds a cursor to one.
type Node struct {
	children map[key.Chord]*Node
	tag      any
	terminal bool
}

func newNode() *Node {
	return &Node{children: make(map[key.Chord]*Node)}
}

// Child returns the node reached by consuming the given chord, if any.
func (n *Node) Child(c key.Chord) (*Node, bool) {
	child, ok := n.children[c]
	return child, ok
}

// Terminal returns true if a registered sequence ends at this node.
func (n *Node) Terminal() bool {
	return n.terminal
}

// Tag returns the completion tag stored at this node, if it is terminal.
func (n *Node) Tag() (any, bool) {
	if !n.terminal {
		return nil, false
	}
	return n.tag, true
}

// Trie stores registered chord sequences and enforces that no registration
// is a prefix of another. Prefix-freedom is what lets the matcher complete a
// sequence the instant its last chord arrives, with no lookahead or timeout.
//
// The trie is not safe for concurrent use; the caller's single input loop
// provides the only ordering guarantee.
type Trie struct {
	root     *Node
	size     int
	reserved key.Key
	logger   *log.Logger
}

// Option configures a Trie.
type Option func(*Trie)

// WithReservedKey overrides the key rejected inside registrations.
// The default is key.KeyEscape.
func WithReservedKey(k key.Key) Option {
	return func(t *Trie) { t.reserved = k }
}

// WithLogger sets the logger used for registration warnings.
func WithLogger(l *log.Logger) Option {
	return func(t *Trie) { t.logger = l }
}

// New creates an empty trie.
func New(opts ...Option) *Trie {
	t := &Trie{
		root:     newNode(),
		reserved: key.KeyEscape,
		logger:   log.Null,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the root node. The matcher's idle cursor sits here.
func (t *Trie) Root() *Node {
	return t.root
}

// Len returns the number of registered sequences.
func (t *Trie) Len() int {
	return t.size
}

// ReservedKey returns the key rejected inside registrations.
func (t *Trie) ReservedKey() key.Key {
	return t.reserved
}

// Register adds a sequence with its completion tag.
//
// It fails with ErrInvalidSequence for an empty sequence, ErrReservedKey if
// any chord uses the reserved escape key, and ErrPrefixClash if an existing
// registration ends on an intermediate node of the path (rule A) or the
// final node already has descendants (rule B). Re-registering the exact same
// sequence overwrites the tag with a warning.
//
// The whole path is validated before any node is created, so a rejected
// registration allocates nothing and the trie is left untouched.
func (t *Trie) Register(seq key.Sequence, tag any) error {
	if len(seq) == 0 {
		return ErrInvalidSequence
	}
	for _, c := range seq {
		if c.Key == t.reserved {
			return fmt.Errorf("%w: %s in %s", ErrReservedKey, c, seq)
		}
	}

	// Walk the existing portion of the path. Every pre-existing node
	// visited before the final position must be non-terminal (rule A).
	node := t.root
	i := 0
	for ; i < len(seq); i++ {
		child, ok := node.children[seq[i]]
		if !ok {
			break
		}
		if child.terminal && i < len(seq)-1 {
			return fmt.Errorf("%w: %s already registered as a prefix of %s",
				ErrPrefixClash, key.Sequence(seq[:i+1]), seq)
		}
		node = child
	}

	if i == len(seq) {
		// The full path pre-exists. A node with descendants cannot
		// become terminal (rule B); a terminal node is an exact
		// re-registration.
		if len(node.children) > 0 {
			return fmt.Errorf("%w: %s is a prefix of an existing registration",
				ErrPrefixClash, seq)
		}
		if node.terminal {
			t.logger.Warn("overwriting registration for %s", seq)
			node.tag = tag
			return nil
		}
		node.terminal = true
		node.tag = tag
		t.size++
		return nil
	}

	// The remainder of the path is fresh; nothing below a new branch can
	// clash, so creation cannot fail.
	for ; i < len(seq); i++ {
		child := newNode()
		node.children[seq[i]] = child
		node = child
	}
	node.terminal = true
	node.tag = tag
	t.size++
	return nil
}

// Unregister removes a sequence. It returns false, not an error, when the
// sequence is not registered; unregistering is idempotent.
func (t *Trie) Unregister(seq key.Sequence) bool {
	if len(seq) == 0 {
		return false
	}

	path := make([]*Node, 0, len(seq)+1)
	path = append(path, t.root)

	node := t.root
	for _, c := range seq {
		child, ok := node.children[c]
		if !ok {
			return false
		}
		path = append(path, child)
		node = child
	}

	if !node.terminal {
		return false
	}
	node.terminal = false
	node.tag = nil
	t.size--

	// Prune now-empty nodes from leaf to root.
	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if current.terminal || len(current.children) > 0 {
			break
		}
		delete(path[i-1].children, seq[i-1])
	}

	return true
}

// ClearAll drops every registration, resetting the trie to an empty root.
// Any matcher cursor into the old tree must be reset by the caller.
func (t *Trie) ClearAll() {
	t.root = newNode()
	t.size = 0
}

// Sequences returns the registered sequences in canonical textual order,
// for diagnostics and binding listings.
func (t *Trie) Sequences() []key.Sequence {
	var out []key.Sequence
	var walk func(n *Node, prefix key.Sequence)
	walk = func(n *Node, prefix key.Sequence) {
		if n.terminal {
			out = append(out, prefix.Clone())
		}
		for c, child := range n.children {
			walk(child, append(prefix, c))
		}
	}
	walk(t.root, nil)

	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
