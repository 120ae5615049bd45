package app

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/remap/internal/input/resolver"
)

// eventTimeout carries a fired disambiguation timer back onto the event
// loop. Run calls fire on the loop goroutine, which keeps every App
// mutation single-threaded.
type eventTimeout struct {
	tcell.EventTime
	fire func()
}

// eventScheduler arms real timers for the resolver but delivers their
// callbacks as events on the attached screen instead of running them on
// the timer goroutine. Without an attached screen (headless use, or
// after the event loop exits) callbacks run inline.
type eventScheduler struct {
	mu     sync.Mutex
	screen tcell.Screen
}

func (s *eventScheduler) attach(screen tcell.Screen) {
	s.mu.Lock()
	s.screen = screen
	s.mu.Unlock()
}

func (s *eventScheduler) detach() {
	s.attach(nil)
}

// Schedule implements resolver.Scheduler.
func (s *eventScheduler) Schedule(d time.Duration, fn func()) resolver.CancelFunc {
	t := time.AfterFunc(d, func() { s.deliver(fn) })
	return func() { t.Stop() }
}

func (s *eventScheduler) deliver(fn func()) {
	s.mu.Lock()
	screen := s.screen
	s.mu.Unlock()

	if screen == nil {
		fn()
		return
	}
	ev := &eventTimeout{fire: fn}
	ev.SetEventNow()
	// A full event queue means key events are already waiting; they
	// will rearm or resolve the pending prefix themselves, so the
	// dropped timeout is harmless.
	_ = screen.PostEvent(ev)
}
