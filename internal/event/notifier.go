// Package event fans matcher outcomes out to subscribers.
//
// Delivery is synchronous and in subscription order, on the goroutine that
// calls Publish — the matcher contract is single-threaded, so there is no
// queueing or worker machinery here. A panicking handler is recovered and
// logged so one subscriber cannot take down the input loop.
package event

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kmikiy/keycast/internal/input/matcher"
	"github.com/kmikiy/keycast/internal/log"
)

// Handler receives one outcome per invocation. Handlers must tolerate
// receiving several outcomes per keystroke.
type Handler func(matcher.Outcome)

// Subscription identifies a registered handler.
type Subscription struct {
	id uuid.UUID
}

// ID returns the subscription identifier.
func (s Subscription) ID() string {
	return s.id.String()
}

type subscriber struct {
	id      uuid.UUID
	handler Handler
}

// Notifier dispatches outcomes to subscribed handlers.
type Notifier struct {
	mu          sync.RWMutex
	subscribers []subscriber
	logger      *log.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger used to report handler panics.
func WithLogger(l *log.Logger) Option {
	return func(n *Notifier) { n.logger = l }
}

// NewNotifier creates an empty notifier.
func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{logger: log.Null}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe registers a handler and returns its subscription handle.
func (n *Notifier) Subscribe(h Handler) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.New()
	n.subscribers = append(n.subscribers, subscriber{id: id, handler: h})
	return Subscription{id: id}
}

// Unsubscribe removes a handler. It returns false if the subscription is not
// registered.
func (n *Notifier) Unsubscribe(sub Subscription) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subscribers {
		if s.id == sub.id {
			n.subscribers = append(n.subscribers[:i], n.subscribers[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of subscribers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

// Publish delivers each outcome to every subscriber, in order.
func (n *Notifier) Publish(outcomes ...matcher.Outcome) {
	n.mu.RLock()
	subs := make([]subscriber, len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.RUnlock()

	for _, out := range outcomes {
		for _, s := range subs {
			n.deliver(s, out)
		}
	}
}

func (n *Notifier) deliver(s subscriber, out matcher.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("outcome handler %s panicked: %v", s.id, r)
		}
	}()
	s.handler(out)
}
