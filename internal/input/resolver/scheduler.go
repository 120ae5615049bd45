package resolver

import "time"

// CancelFunc cancels a scheduled callback. Calling it after the callback
// has fired is a no-op.
type CancelFunc func()

// Scheduler arms single-shot callbacks for the disambiguation window.
// The resolver keeps at most one outstanding callback; arming a new one
// always cancels the previous first.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules callbacks on the Go runtime timer.
type TimerScheduler struct{}

// Schedule implements Scheduler using time.AfterFunc.
func (TimerScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
