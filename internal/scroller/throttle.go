package scroller

import "time"

// DefaultThrottleWait is how often scroll handling may run during a burst.
const DefaultThrottleWait = 150 * time.Millisecond

// Throttle gates a handler so that it runs on the first call of a burst and
// once more after the burst ends. It does not own a timer: the caller
// schedules the deferred run (for example with tea.Tick) and asks Due when
// it fires. Only the most recently scheduled deferred run can be due.
//
// Throttle is not safe for concurrent use.
type Throttle struct {
	wait time.Duration
	now  func() time.Time
	last time.Time
	seq  uint64
}

// NewThrottle returns a throttle with the given wait. A nil now uses
// time.Now.
func NewThrottle(wait time.Duration, now func() time.Time) *Throttle {
	if wait < 0 {
		wait = 0
	}
	if now == nil {
		now = time.Now
	}
	return &Throttle{wait: wait, now: now}
}

// Wait returns the throttle interval.
func (t *Throttle) Wait() time.Duration {
	return t.wait
}

// Call records an invocation. It reports whether the handler should run
// right away and returns the token of the deferred run it schedules, which
// supersedes any earlier one.
func (t *Throttle) Call() (runNow bool, token uint64) {
	t.seq++
	return t.tryRun(), t.seq
}

// Due reports whether the deferred run identified by token should run now.
// Superseded tokens are never due.
func (t *Throttle) Due(token uint64) bool {
	if token != t.seq {
		return false
	}
	return t.tryRun()
}

func (t *Throttle) tryRun() bool {
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.wait {
		return false
	}
	t.last = now
	return true
}
