// Package app wires configuration, trie, matcher, notifier and dispatch
// table into a running launcher.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kmikiy/keycast/internal/config"
	"github.com/kmikiy/keycast/internal/dispatcher"
	"github.com/kmikiy/keycast/internal/event"
	"github.com/kmikiy/keycast/internal/input/keymap"
	"github.com/kmikiy/keycast/internal/input/matcher"
	"github.com/kmikiy/keycast/internal/input/trie"
	"github.com/kmikiy/keycast/internal/log"
	"github.com/kmikiy/keycast/internal/plugin/lua"
	"github.com/kmikiy/keycast/internal/term"
)

// Backend is the chord source driving the application. *term.Terminal
// implements it.
type Backend interface {
	Init() error
	Shutdown()
	PollEvent() term.Event
	Interrupt()
	SetStatus(status string)
	Beep()
}

// Options configures application startup.
type Options struct {
	// ConfigPath is the TOML configuration file.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Watch reloads bindings when the config file changes.
	Watch bool

	// Logger overrides the default logger, e.g. in tests.
	Logger *log.Logger
}

// Application owns the engine and its collaborators for one session.
//
// A builtin "quit" dispatcher is always registered so a binding like
// `dispatcher = "quit"` exits the application.
type Application struct {
	opts   Options
	logger *log.Logger

	mu       sync.Mutex
	cfg      *config.Config
	registry *keymap.Registry
	match    *matcher.Matcher
	notifier *event.Notifier
	table    *dispatcher.Table
	luaHost  *lua.Host

	backend Backend
	watcher *config.Watcher

	running  atomic.Bool
	quitOnce sync.Once
	quit     chan struct{}
}

// New loads the configuration and assembles the application.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger.SetLevel(log.ParseLevel(level))

	escape, err := cfg.EscapeKey()
	if err != nil {
		return nil, err
	}

	t := trie.New(
		trie.WithReservedKey(escape),
		trie.WithLogger(logger.WithComponent("trie")),
	)

	a := &Application{
		opts:     opts,
		logger:   logger,
		cfg:      cfg,
		registry: keymap.NewRegistry(t, logger.WithComponent("keymap")),
		match:    matcher.New(t, matcher.WithEscapeKey(escape)),
		notifier: event.NewNotifier(event.WithLogger(logger.WithComponent("event"))),
		luaHost:  lua.NewHost(lua.WithLogger(logger.WithComponent("lua"))),
		quit:     make(chan struct{}),
	}

	a.notifier.Subscribe(a.handleOutcome)

	if err := a.install(cfg); err != nil {
		a.luaHost.Close()
		return nil, err
	}
	return a, nil
}

// install registers bindings and actions from a loaded config. The action
// table is built first, so a bad action (e.g. a Lua chunk that does not
// compile) fails the whole install before any binding is touched; per-binding
// failures afterwards are logged and skipped.
func (a *Application) install(cfg *config.Config) error {
	table := dispatcher.NewTable(dispatcher.WithLogger(a.logger.WithComponent("dispatch")))
	table.Register("quit", 0, dispatcher.Func(func(dispatcher.Invocation) error {
		return ErrQuit
	}))

	for _, action := range cfg.Actions {
		h, err := a.buildHandler(action)
		if err != nil {
			return err
		}
		table.Register(action.Dispatcher, action.Index, h)
		if action.Default {
			table.SetDefault(action.Dispatcher, action.Index)
		}
	}

	failures := a.registry.Reload(cfg.Bindings)
	for _, f := range failures {
		a.logger.Warn("binding not registered: %v", f)
	}
	a.logger.Info("registered %d of %d bindings", len(cfg.Bindings)-len(failures), len(cfg.Bindings))

	a.table = table
	return nil
}

// buildHandler creates the handler for one configured action.
func (a *Application) buildHandler(action config.Action) (dispatcher.Handler, error) {
	if action.Lua != "" {
		name := fmt.Sprintf("%s[%d]", action.Dispatcher, action.Index)
		return a.luaHost.Compile(name, action.Lua)
	}
	msg := action.Log
	logger := a.logger.WithComponent("action")
	return dispatcher.Func(func(inv dispatcher.Invocation) error {
		logger.Info("%s (%s[%d])", msg, inv.Tag, inv.Index)
		return nil
	}), nil
}

// SetBackend attaches the chord source. Must be called before Run.
func (a *Application) SetBackend(b Backend) {
	a.backend = b
}

// Run drives the input loop until the context is cancelled or a quit action
// fires. It initializes and restores the backend itself.
func (a *Application) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}
	defer a.backend.Shutdown()

	if a.opts.Watch {
		if err := a.startWatcher(ctx); err != nil {
			a.logger.Warn("config watching disabled: %v", err)
		}
	}

	stop := context.AfterFunc(ctx, a.backend.Interrupt)
	defer stop()

	a.renderStatus()

	for {
		ev := a.backend.PollEvent()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.quit:
			return nil
		default:
		}

		switch ev.Kind {
		case term.EventChord:
			a.consume(ev)
		case term.EventFocusLost:
			a.resetSequence()
		case term.EventResize:
			a.renderStatus()
		case term.EventInterrupt:
			// Handled by the select above on the next iteration.
		}
	}
}

// consume runs one chord through the matcher and publishes its outcomes.
func (a *Application) consume(ev term.Event) {
	a.mu.Lock()
	outcomes := a.match.Consume(ev.Chord)
	a.mu.Unlock()

	a.notifier.Publish(outcomes...)
	a.renderStatus()
}

// resetSequence cancels any pending sequence, e.g. on focus loss.
func (a *Application) resetSequence() {
	a.mu.Lock()
	outcomes := a.match.ResetSequence()
	a.mu.Unlock()

	a.notifier.Publish(outcomes...)
	a.renderStatus()
}

// handleOutcome is the application's own subscriber: it forwards completions
// to the dispatch table and turns the rest into user feedback.
func (a *Application) handleOutcome(o matcher.Outcome) {
	switch o.Kind {
	case matcher.KindCompletion:
		tag, ok := o.Tag.(string)
		if !ok {
			a.logger.Error("completion with non-string tag %T", o.Tag)
			return
		}
		a.mu.Lock()
		table := a.table
		a.mu.Unlock()

		if err := table.Dispatch(tag, o.Count, o.HasCount); err != nil {
			if errors.Is(err, ErrQuit) {
				a.Stop()
				return
			}
			a.logger.Warn("dispatch failed: %v", err)
			if a.backend != nil {
				a.backend.Beep()
			}
		}
	case matcher.KindAbort:
		a.logger.Debug("sequence aborted: %s", o.History)
	case matcher.KindEscape:
		// Idle escape: the launcher analog of hiding the window is
		// clearing the status line.
		if a.backend != nil {
			a.backend.SetStatus("")
		}
	case matcher.KindProgress:
		a.logger.Debug("sequence progress: %s", o.History)
	}
}

// renderStatus mirrors the matcher state on the backend's status line.
func (a *Application) renderStatus() {
	if a.backend == nil {
		return
	}

	a.mu.Lock()
	pending := a.match.Pending().String()
	count, hasCount := a.match.PendingCount()
	a.mu.Unlock()

	var status string
	switch {
	case hasCount && pending != "":
		status = fmt.Sprintf("%d %s", count, pending)
	case pending != "":
		status = pending
	case hasCount:
		status = fmt.Sprintf("%d", count)
	}
	a.backend.SetStatus(status)
}

// Reload re-reads the configuration and swaps bindings and actions. The
// pending sequence is cancelled since its registrations may be gone. A failed
// reload leaves the previous bindings and actions in place.
func (a *Application) Reload() error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.cfg.Escape != cfg.Escape {
		a.logger.Warn("escape key change takes effect on restart")
	}
	if err := a.install(cfg); err != nil {
		a.mu.Unlock()
		return err
	}
	a.cfg = cfg
	aborted := a.match.ResetSequence()
	a.mu.Unlock()

	a.notifier.Publish(aborted...)
	return nil
}

// startWatcher begins config hot-reloading.
func (a *Application) startWatcher(ctx context.Context) error {
	w, err := config.NewWatcher(a.opts.ConfigPath, func() {
		if err := a.Reload(); err != nil {
			a.logger.Error("config reload failed: %v", err)
		} else {
			a.renderStatus()
		}
	}, a.logger.WithComponent("watcher"))
	if err != nil {
		return err
	}
	a.watcher = w
	go w.Run(ctx)
	return nil
}

// Bindings returns the registered sequences in canonical form.
func (a *Application) Bindings() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.Sequences()
}

// Notifier exposes the outcome stream for additional subscribers.
func (a *Application) Notifier() *event.Notifier {
	return a.notifier
}

// Stop requests a normal exit.
func (a *Application) Stop() {
	a.quitOnce.Do(func() {
		close(a.quit)
	})
	if a.backend != nil {
		a.backend.Interrupt()
	}
}

// Shutdown releases resources. Safe to call after Run returns.
func (a *Application) Shutdown() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	a.luaHost.Close()
}
