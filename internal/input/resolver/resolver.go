package resolver

import (
	"bytes"
	"slices"
	"sync"
	"time"

	"github.com/dshills/remap/internal/input/feedback"
	"github.com/dshills/remap/internal/input/maptable"
)

// Defaults for the resolver configuration.
const (
	// DefaultQueueSize is the pending queue capacity in symbols.
	DefaultQueueSize = 50

	// DefaultWindow is the disambiguation window for ambiguous
	// prefixes.
	DefaultWindow = time.Second
)

// Dispatcher consumes resolved symbols downstream of the resolver.
type Dispatcher interface {
	// HandleKey processes one resolved symbol in the given mode and
	// reports whether more symbols are needed to finish the current
	// command unit. When it reports false the resolver clears the
	// feedback buffer.
	HandleKey(mode string, sym byte) (more bool)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(mode string, sym byte) bool

// HandleKey implements Dispatcher.
func (f DispatcherFunc) HandleKey(mode string, sym byte) bool {
	return f(mode, sym)
}

// ModeState exposes the active mode and its transient no-remap flag.
// The flag is owned by the mode context; the resolver only consults and
// clears it.
type ModeState interface {
	CurrentName() string
	NoRemap() bool
	ClearNoRemap()
}

// Config configures a Resolver.
type Config struct {
	// QueueSize is the pending queue capacity (default: DefaultQueueSize).
	QueueSize int

	// Window is the disambiguation window (default: DefaultWindow).
	Window time.Duration

	// FeedbackSize is the feedback buffer capacity in bytes
	// (default: feedback.DefaultSize).
	FeedbackSize int

	// Scheduler arms the disambiguation timer (default: TimerScheduler).
	Scheduler Scheduler
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		QueueSize:    DefaultQueueSize,
		Window:       DefaultWindow,
		FeedbackSize: feedback.DefaultSize,
		Scheduler:    TimerScheduler{},
	}
}

// Resolver is the stateful remapping engine. All mutable state is owned
// by the resolver; the mutex only serializes the timer callback against
// regular submissions, preserving the single logical thread of control.
type Resolver struct {
	mu sync.Mutex

	table    *maptable.Table
	modes    ModeState
	dispatch Dispatcher
	show     *feedback.Buffer

	queue    []byte
	size     int
	resolved int

	window   time.Duration
	sched    Scheduler
	cancel   CancelFunc
	timerGen uint64

	dropped uint64
}

// New creates a resolver over the given mapping table, mode state, and
// downstream dispatcher. Zero-valued Config fields fall back to their
// defaults.
func New(table *maptable.Table, modes ModeState, dispatch Dispatcher, cfg Config) *Resolver {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = TimerScheduler{}
	}
	return &Resolver{
		table:    table,
		modes:    modes,
		dispatch: dispatch,
		show:     feedback.New(cfg.FeedbackSize),
		queue:    make([]byte, 0, cfg.QueueSize),
		size:     cfg.QueueSize,
		window:   cfg.Window,
		sched:    cfg.Scheduler,
	}
}

// Submit feeds a batch of raw symbols into the engine and runs the
// resolution loop. An empty batch signals a fired timeout and forces the
// current ambiguous prefix to resolve.
func (r *Resolver) Submit(symbols []byte) Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submit(symbols, len(symbols) == 0)
}

// timerFired delivers a timeout submission. A stale timer (one that was
// superseded while waiting on the lock) is discarded.
func (r *Resolver) timerFired(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.timerGen {
		return
	}
	r.submit(nil, true)
}

func (r *Resolver) submit(symbols []byte, timeout bool) Result {
	if !timeout {
		// Continued typing keeps extending the disambiguation window.
		r.rearm()
	}

	// Queue the new symbols; excess over capacity is dropped silently.
	for _, sym := range symbols {
		if len(r.queue) < r.size {
			r.queue = append(r.queue, sym)
		} else {
			r.dropped++
		}
	}

	fired := false
	for {
		// Send any resolved symbols to the active mode.
		for r.resolved > 0 {
			sym := r.queue[0]
			copy(r.queue, r.queue[1:])
			r.queue = r.queue[:len(r.queue)-1]
			r.resolved--

			r.modes.ClearNoRemap()
			if !r.dispatch.HandleKey(r.modes.CurrentName(), sym) {
				r.show.Clear()
			}
		}

		if len(r.queue) == 0 {
			r.resolved = 0
			if fired {
				return Done
			}
			return NoMatch
		}

		match, ambiguous := r.scan(timeout)

		// An ambiguous prefix waits for more input; the timer will
		// force resolution if none arrives.
		if ambiguous {
			r.show.Set(r.queue, false)
			return Ambiguous
		}

		if match != nil {
			fired = true
			r.splice(match)
			continue
		}

		// The leading symbol is not part of any mapping.
		r.resolved = 1
		r.show.Set(r.queue[:1], true)
	}
}

// scan walks the mapping table for the current mode. It returns the
// longest complete match of the queue's leading symbols (ties go to the
// most recently inserted entry, which the scan reaches first) and
// whether any longer mapping could still extend the current prefix.
// Timeout scans never report ambiguity; they force resolution.
func (r *Resolver) scan(timeout bool) (match *maptable.Mapping, ambiguous bool) {
	if r.modes.NoRemap() {
		return nil, false
	}
	r.table.Each(r.modes.CurrentName(), func(m *maptable.Mapping) bool {
		if !timeout && len(m.Input) > len(r.queue) && bytes.HasPrefix(m.Input, r.queue) {
			ambiguous = true
		}
		if len(m.Input) <= len(r.queue) &&
			bytes.Equal(m.Input, r.queue[:len(m.Input)]) &&
			(match == nil || len(match.Input) < len(m.Input)) {
			match = m
		}
		return true
	})
	return match, ambiguous
}

// splice replaces the matched input prefix of the queue with the
// mapping's output, preserving the untouched tail. Only the first
// min(len(input), len(output)) symbols are marked resolved, so output
// beyond the original input length stays subject to further remapping.
func (r *Resolver) splice(m *maptable.Mapping) {
	r.queue = slices.Replace(r.queue, 0, len(m.Input), m.Output...)
	if len(r.queue) > r.size {
		// A growing mapping output cannot overflow the queue; the
		// tail is dropped like any other excess input.
		r.dropped += uint64(len(r.queue) - r.size)
		r.queue = r.queue[:r.size]
	}
	r.resolved = min(len(m.Input), len(m.Output))
}

// rearm cancels any outstanding disambiguation timer and schedules a
// fresh one.
func (r *Resolver) rearm() {
	if r.cancel != nil {
		r.cancel()
	}
	r.timerGen++
	gen := r.timerGen
	r.cancel = r.sched.Schedule(r.window, func() {
		r.timerFired(gen)
	})
}

// Pending returns the feedback buffer's current transcript of keys
// typed so far but not yet resolved.
func (r *Resolver) Pending() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.show.String()
}

// Dropped returns how many symbols have been discarded to keep the
// pending queue within capacity.
func (r *Resolver) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}
