package token

import (
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Clock schedules the timers of a token.
// It is satisfied by clockwork.Clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) clockwork.Timer
}

// Option configures a Token at construction time.
type Option interface {
	apply(t *Token)
}

type optionFunc func(t *Token)

func (fn optionFunc) apply(t *Token) {
	fn(t)
}

// WithClock sets the clock used for scheduling.
// Defaults to the real clock.
func WithClock(clock Clock) Option {
	return optionFunc(func(t *Token) {
		t.clock = clock
	})
}

// WithLogger sets the logger lifecycle transitions are reported to.
// Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(t *Token) {
		t.logger = logger
	})
}

// WithListener registers a listener before any timer is scheduled.
//
// Listeners attached with Token.On after New returns may miss the first event
// of a token whose warning or expiry time has already passed.
func WithListener(event Event, l *Listener) Option {
	return optionFunc(func(t *Token) {
		t.notifier.subscribe(event, l)
	})
}
