// Package lua hosts scripted action handlers.
//
// Config entries may attach a Lua chunk to a dispatch slot. The chunk runs
// in-process with the invocation bound as globals, so actions can react to
// the typed numeric prefix without keycast launching anything external.
package lua

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/kmikiy/keycast/internal/dispatcher"
	"github.com/kmikiy/keycast/internal/log"
)

// ErrHostClosed is returned when using a closed host.
var ErrHostClosed = errors.New("lua host is closed")

// Host owns one Lua state shared by all scripted actions.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes the rare
// off-loop callers (config reload) against action execution.
type Host struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
	logger *log.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger for script diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// NewHost creates a Lua host with the standard libraries loaded.
func NewHost(opts ...Option) *Host {
	h := &Host{
		state:  lua.NewState(),
		logger: log.Null,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Close releases the Lua state. Actions compiled from this host become
// unusable.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.state.Close()
}

// Compile turns a Lua chunk into a dispatchable action. The chunk is parsed
// eagerly so config errors surface at registration time, not on first use.
func (h *Host) Compile(name, source string) (*Action, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}
	fn, err := h.state.LoadString(source)
	if err != nil {
		return nil, fmt.Errorf("compiling lua action %q: %w", name, err)
	}
	return &Action{host: h, name: name, fn: fn}, nil
}

// Action is a compiled Lua chunk implementing dispatcher.Handler.
//
// The invocation is exposed to the chunk as globals: `tag` and `index`
// always, `count` only when a numeric prefix was typed (nil otherwise).
type Action struct {
	host *Host
	name string
	fn   *lua.LFunction
}

// Name returns the action's configured name.
func (a *Action) Name() string {
	return a.name
}

// Execute runs the chunk. Implements dispatcher.Handler.
func (a *Action) Execute(inv dispatcher.Invocation) error {
	a.host.mu.Lock()
	defer a.host.mu.Unlock()

	if a.host.closed {
		return ErrHostClosed
	}
	return a.host.run(a, inv)
}

// run performs the actual call with panic recovery; a scripted action must
// not take down the input loop.
func (h *Host) run(a *Action, inv dispatcher.Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = fmt.Errorf("lua action %q panicked: %w", a.name, v)
			default:
				err = fmt.Errorf("lua action %q panicked: %v", a.name, v)
			}
		}
	}()

	L := h.state
	L.SetGlobal("tag", lua.LString(inv.Tag))
	L.SetGlobal("index", lua.LNumber(inv.Index))
	if inv.HasCount {
		L.SetGlobal("count", lua.LNumber(inv.Count))
	} else {
		L.SetGlobal("count", lua.LNil)
	}

	L.Push(a.fn)
	if err := L.PCall(0, 0, nil); err != nil {
		return fmt.Errorf("lua action %q: %w", a.name, err)
	}
	return nil
}
