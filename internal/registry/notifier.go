package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"framedata/internal/domain"
)

// ErrListenerFailed is matched by every error returned from a failing subscriber
var ErrListenerFailed = errors.New("listener failed")

// Listener receives registry notifications
type Listener interface {
	HandleWindowEvent(w *domain.Window, event domain.EventType, rec *WindowRecord) error
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(w *domain.Window, event domain.EventType, rec *WindowRecord) error

// HandleWindowEvent calls f
func (f ListenerFunc) HandleWindowEvent(w *domain.Window, event domain.EventType, rec *WindowRecord) error {
	return f(w, event, rec)
}

// ListenerError reports the subscriber that stopped a notification. Subscribers
// after it in the list were not called for that event.
type ListenerError struct {
	Subscription uuid.UUID
	Position     int
	Event        domain.EventType
	Err          error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d (%s) failed on %s: %v", e.Position, e.Subscription, e.Event, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

func (e *ListenerError) Is(target error) bool {
	return target == ErrListenerFailed
}

// Subscription is the handle returned by Subscribe
type Subscription struct {
	id       uuid.UUID
	listener Listener
}

// ID returns the unique id of the subscription
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Notifier fans registry events out to subscribers, synchronously and in
// subscription order.
type Notifier struct {
	mu     sync.Mutex
	subs   []*Subscription
	logger *zap.Logger
}

// NewNotifier creates a notifier without subscribers
func NewNotifier(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{logger: logger.With(zap.String("component", "notifier"))}
}

// Subscribe appends l to the subscriber list. Subscribing the same listener
// twice delivers every event to it twice.
func (n *Notifier) Subscribe(l Listener) *Subscription {
	s := &Subscription{id: uuid.New(), listener: l}
	n.mu.Lock()
	n.subs = append(n.subs, s)
	n.mu.Unlock()
	n.logger.Debug("subscribed", zap.Stringer("subscription", s.id))
	return s
}

// Unsubscribe removes s. Unknown or already removed subscriptions are ignored.
func (n *Notifier) Unsubscribe(s *Subscription) {
	if s == nil {
		return
	}
	n.mu.Lock()
	n.subs = slices.DeleteFunc(n.subs, func(x *Subscription) bool {
		return x == s
	})
	n.mu.Unlock()
}

// Len returns the number of active subscriptions
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Notify calls every subscriber registered when Notify started. The first
// subscriber error stops the chain and is returned as a *ListenerError;
// panics are not recovered.
func (n *Notifier) Notify(w *domain.Window, event domain.EventType, rec *WindowRecord) error {
	n.mu.Lock()
	subs := slices.Clone(n.subs)
	n.mu.Unlock()

	for i, s := range subs {
		if err := s.listener.HandleWindowEvent(w, event, rec); err != nil {
			n.logger.Warn("listener failed",
				zap.Stringer("subscription", s.id),
				zap.String("event", string(event)),
				zap.Error(err))
			return &ListenerError{Subscription: s.id, Position: i, Event: event, Err: err}
		}
	}
	return nil
}
