package token

import (
	"sync"

	"golang.org/x/exp/slices"
)

// Event names a lifecycle notification.
type Event int

const (
	// EventWarn fires once, warnFor before the token expires.
	EventWarn Event = iota

	// EventExpire fires once, when the token expires.
	EventExpire

	// EventRevoke fires on every call to Token.Revoke.
	EventRevoke

	eventCount
)

func (e Event) String() string {
	switch e {
	case EventWarn:
		return "warn"
	case EventExpire:
		return "expire"
	case EventRevoke:
		return "revoke"
	default:
		return "unknown"
	}
}

func (e Event) valid() bool {
	return e >= 0 && e < eventCount
}

// Listener is a registered event callback.
//
// Listeners are compared by identity: Off removes the exact *Listener passed to On.
type Listener struct {
	fn func(*Token)
}

// NewListener returns a Listener calling fn with the token that fired an event.
func NewListener(fn func(*Token)) *Listener {
	return &Listener{fn: fn}
}

// notifier delivers events to listeners in registration order.
type notifier struct {
	mu        sync.Mutex
	listeners [eventCount][]*Listener
}

func (n *notifier) subscribe(event Event, l *Listener) {
	if !event.valid() || l == nil || l.fn == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.listeners[event] = append(n.listeners[event], l)
}

// unsubscribe removes the most recent registration of l, like EventEmitter.off.
func (n *notifier) unsubscribe(event Event, l *Listener) {
	if !event.valid() || l == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	listeners := n.listeners[event]
	for i := len(listeners) - 1; i >= 0; i-- {
		if listeners[i] == l {
			// Delete in place would corrupt snapshots taken by emit.
			n.listeners[event] = slices.Delete(slices.Clone(listeners), i, i+1)

			return
		}
	}
}

// emit invokes the listeners registered when emission starts.
// The lock is not held while listeners run, so they may call On and Off freely.
func (n *notifier) emit(event Event, t *Token) {
	n.mu.Lock()
	listeners := n.listeners[event]
	n.mu.Unlock()

	for _, l := range listeners {
		l.fn(t)
	}
}
