// Package token models the lifecycle of an authentication token.
//
// A Token knows its value, expiry and type. Its expired and revoked status are exposed
// as result values, and listeners are notified when the token approaches expiry,
// expires or gets revoked.
package token

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/distribution-auth/tokenlife/pkg/result"
)

// Options holds the immutable fields of a Token.
type Options struct {
	Value   string        `mapstructure:"value"`
	Expires time.Time     `mapstructure:"expires"`
	WarnFor time.Duration `mapstructure:"warnFor"`
	Type    Type          `mapstructure:"type"`
}

// Validate checks whether a token can be created from o.
func (o Options) Validate() error {
	if o.Expires.IsZero() {
		return fmt.Errorf("%w: expiry is required", ErrInvalidExpiry)
	}

	if o.WarnFor < 0 {
		return fmt.Errorf("%w: %s is negative", ErrInvalidWarnFor, o.WarnFor)
	}

	if !o.Type.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, o.Type)
	}

	return nil
}

// Token is an authentication token with a time-driven lifecycle.
//
// The expired status turns into a failure once the expiry timer fires,
// the revoked status once Revoke is called. Neither ever turns back.
type Token struct {
	value   string
	expires time.Time
	warnFor time.Duration
	typ     Type

	clock    Clock
	logger   *zap.Logger
	notifier notifier

	mu          sync.Mutex
	expired     result.Result[*Token]
	revoked     result.Result[*Token]
	warnTimer   clockwork.Timer
	expireTimer clockwork.Timer
	disposed    bool
}

// New creates a Token and schedules its warning and expiry timers.
//
// Expires and WarnFor are truncated to whole milliseconds, the precision of the wire form.
//
// Timer callbacks run on their own goroutine, never from within New. Timers whose time
// has already passed fire as soon as possible: register listeners that must not miss
// them with WithListener. With the real clock, the status of an already expired token
// may turn into a failure before New returns.
func New(opts Options, options ...Option) (*Token, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	t := &Token{
		value:   opts.Value,
		expires: opts.Expires.Truncate(time.Millisecond),
		warnFor: opts.WarnFor.Truncate(time.Millisecond),
		typ:     opts.Type,
	}

	t.expired = result.Ok(t)
	t.revoked = result.Ok(t)

	for _, option := range options {
		option.apply(t)
	}

	if t.clock == nil {
		t.clock = clockwork.NewRealClock()
	}

	if t.logger == nil {
		t.logger = zap.NewNop()
	}

	t.logger = t.logger.With(
		zap.String("type", string(t.typ)),
		zap.String("token", redact(t.value)),
		zap.Time("expires", t.expires),
	)

	now := t.clock.Now()
	expireDelay := delay(now, t.expires)
	warnDelay := delay(now, t.expires.Add(-t.warnFor))

	// The timers may fire before they are stored, so they are never read by the callbacks.
	expireTimer := t.clock.AfterFunc(expireDelay, t.expire)
	warnTimer := t.clock.AfterFunc(warnDelay, t.warn)

	t.mu.Lock()
	t.expireTimer = expireTimer
	t.warnTimer = warnTimer
	t.mu.Unlock()

	t.logger.Debug("token created", zap.Duration("expireIn", expireDelay), zap.Duration("warnIn", warnDelay))

	return t, nil
}

// Of is an alias of New.
func Of(opts Options, options ...Option) (*Token, error) {
	return New(opts, options...)
}

// delay returns the non-negative time left until at.
func delay(now time.Time, at time.Time) time.Duration {
	d := at.Sub(now)
	if d < 0 {
		return 0
	}

	return d
}

// Value returns the opaque token value.
func (t *Token) Value() string {
	return t.value
}

// Expires returns the instant the token expires at.
func (t *Token) Expires() time.Time {
	return t.expires
}

// WarnFor returns how long before expiry the warning fires.
func (t *Token) WarnFor() time.Duration {
	return t.warnFor
}

// Type returns the token type.
func (t *Token) Type() Type {
	return t.typ
}

// Expired returns a failure holding an *ExpiredError once the token has expired.
func (t *Token) Expired() result.Result[*Token] {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.expired
}

// Revoked returns a failure holding a *RevokedError once the token has been revoked.
func (t *Token) Revoked() result.Result[*Token] {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.revoked
}

// Usable succeeds if the token is neither revoked nor expired.
// A revoked failure takes precedence over an expired one.
func (t *Token) Usable() result.Result[*Token] {
	return t.Revoked().And(t.Expired())
}

// Revoke marks the token revoked and notifies revoke listeners.
//
// Every call stores a new failure and notifies listeners again.
func (t *Token) Revoke() *Token {
	t.mu.Lock()
	t.revoked = result.Err[*Token](&RevokedError{Type: t.typ, Value: t.value})
	t.mu.Unlock()

	t.logger.Debug("token revoked")

	t.notifier.emit(EventRevoke, t)

	return t
}

// On registers a listener for an event.
// A listener registered after an event fired does not receive it.
func (t *Token) On(event Event, l *Listener) *Token {
	t.notifier.subscribe(event, l)

	return t
}

// Off removes a listener registered with On.
func (t *Token) Off(event Event, l *Listener) *Token {
	t.notifier.unsubscribe(event, l)

	return t
}

// Dispose stops the pending timers of the token.
//
// Neither the warn nor the expire event fires after Dispose returns, and the expired status
// no longer changes. Revoke keeps working. Calling Dispose more than once is a no-op.
func (t *Token) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return
	}

	t.disposed = true

	if t.warnTimer != nil {
		t.warnTimer.Stop()
	}

	if t.expireTimer != nil {
		t.expireTimer.Stop()
	}

	t.logger.Debug("token disposed")
}

func (t *Token) warn() {
	t.mu.Lock()
	disposed := t.disposed
	t.mu.Unlock()

	if disposed {
		return
	}

	t.logger.Debug("token about to expire")

	t.notifier.emit(EventWarn, t)
}

func (t *Token) expire() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()

		return
	}
	t.expired = result.Err[*Token](&ExpiredError{Type: t.typ, Value: t.value})
	t.mu.Unlock()

	t.logger.Debug("token expired")

	t.notifier.emit(EventExpire, t)
}

// Value returns the value of t.
func Value(t *Token) string {
	return t.Value()
}

// Revoke revokes t.
func Revoke(t *Token) *Token {
	return t.Revoke()
}

// Usable reports whether t is usable.
func Usable(t *Token) result.Result[*Token] {
	return t.Usable()
}
