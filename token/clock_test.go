package token

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// recordingClock captures scheduled callbacks instead of running them,
// so tests decide exactly when a timer fires.
type recordingClock struct {
	now time.Time

	mu        sync.Mutex
	scheduled []*scheduledFunc
}

type scheduledFunc struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func newRecordingClock(now time.Time) *recordingClock {
	return &recordingClock{now: now}
}

func (c *recordingClock) Now() time.Time {
	return c.now
}

func (c *recordingClock) AfterFunc(d time.Duration, f func()) clockwork.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &scheduledFunc{delay: d, fn: f}
	c.scheduled = append(c.scheduled, s)

	return &recordingTimer{clock: c, scheduled: s}
}

func (c *recordingClock) get(i int) *scheduledFunc {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.scheduled[i]
}

// Timers are scheduled expire first, warn second.
func (c *recordingClock) expireTimer() *scheduledFunc { return c.get(0) }
func (c *recordingClock) warnTimer() *scheduledFunc { return c.get(1) }

type recordingTimer struct {
	clockwork.Timer

	clock     *recordingClock
	scheduled *scheduledFunc
}

func (t *recordingTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	wasActive := !t.scheduled.stopped
	t.scheduled.stopped = true

	return wasActive
}
