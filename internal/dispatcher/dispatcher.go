// Package dispatcher maps completion tags to indexed action handlers.
//
// A completed sequence carries a tag naming a slot group and an optional
// numeric prefix selecting the slot within it; the table resolves both to a
// handler and executes it. The engine treats tags as opaque — interpretation
// happens entirely here.
package dispatcher

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kmikiy/keycast/internal/log"
)

// Dispatch errors.
var (
	// ErrUnknownTag indicates no slot group exists for the tag.
	ErrUnknownTag = errors.New("unknown dispatch tag")

	// ErrUnknownIndex indicates the slot group has no handler at the index.
	ErrUnknownIndex = errors.New("no action at index")
)

// Invocation carries the context of one dispatched action.
type Invocation struct {
	// ID uniquely identifies this invocation, for logging.
	ID string

	// Tag is the slot group the completed sequence resolved to.
	Tag string

	// Index is the slot that was selected.
	Index uint32

	// Count is the numeric prefix as typed. Valid only when HasCount is
	// true; Index is the group's default otherwise.
	Count uint32

	// HasCount is true when the user typed a numeric prefix.
	HasCount bool
}

// Handler executes one action slot.
type Handler interface {
	Execute(inv Invocation) error
}

// Func adapts a plain function to the Handler interface.
type Func func(Invocation) error

// Execute implements Handler.
func (f Func) Execute(inv Invocation) error {
	return f(inv)
}

type slotGroup struct {
	slots        map[uint32]Handler
	defaultIndex uint32
}

// Table is the indexed action dispatch table.
type Table struct {
	mu     sync.RWMutex
	groups map[string]*slotGroup
	logger *log.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// NewTable creates an empty dispatch table.
func NewTable(opts ...Option) *Table {
	t := &Table{
		groups: make(map[string]*slotGroup),
		logger: log.Null,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register adds a handler at the given slot. Registering over an existing
// slot replaces it.
func (t *Table) Register(tag string, index uint32, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	group, ok := t.groups[tag]
	if !ok {
		group = &slotGroup{slots: make(map[uint32]Handler)}
		t.groups[tag] = group
	}
	group.slots[index] = h
}

// SetDefault sets the slot used when no numeric prefix was typed.
func (t *Table) SetDefault(tag string, index uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	group, ok := t.groups[tag]
	if !ok {
		group = &slotGroup{slots: make(map[uint32]Handler)}
		t.groups[tag] = group
	}
	group.defaultIndex = index
}

// Unregister removes one slot. Removing the last slot drops the group.
func (t *Table) Unregister(tag string, index uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	group, ok := t.groups[tag]
	if !ok {
		return
	}
	delete(group.slots, index)
	if len(group.slots) == 0 {
		delete(t.groups, tag)
	}
}

// Tags returns all registered slot group names.
func (t *Table) Tags() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tags := make([]string, 0, len(t.groups))
	for tag := range t.groups {
		tags = append(tags, tag)
	}
	return tags
}

// Dispatch resolves a completion to a handler and executes it. When hasCount
// is false, the group's default slot is used.
func (t *Table) Dispatch(tag string, count uint32, hasCount bool) error {
	t.mu.RLock()
	group, ok := t.groups[tag]
	if !ok {
		t.mu.RUnlock()
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}

	index := count
	if !hasCount {
		index = group.defaultIndex
	}
	h, ok := group.slots[index]
	t.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q[%d]", ErrUnknownIndex, tag, index)
	}

	inv := Invocation{
		ID:       uuid.NewString(),
		Tag:      tag,
		Index:    index,
		Count:    count,
		HasCount: hasCount,
	}
	t.logger.Debug("dispatching %s[%d] (invocation %s)", tag, index, inv.ID)
	return h.Execute(inv)
}
