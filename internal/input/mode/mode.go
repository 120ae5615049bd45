// Package mode manages input modes and the per-mode key handling
// contract the resolver dispatches into.
package mode

// Result reports how a mode handled a resolved symbol.
type Result uint8

const (
	// ResultComplete indicates a full command unit was consumed.
	ResultComplete Result = iota

	// ResultMore indicates the mode needs more symbols to finish the
	// current command unit.
	ResultMore

	// ResultError indicates the symbol could not be handled.
	ResultError
)

// String returns a string representation of the result.
func (r Result) String() string {
	switch r {
	case ResultComplete:
		return "complete"
	case ResultMore:
		return "more"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Flag holds transient per-mode state bits.
type Flag uint8

const (
	// FlagNoRemap forces the next dispatched symbol to be interpreted
	// literally, skipping mapping lookup. The resolver clears it on
	// every dispatch.
	FlagNoRemap Flag = 1 << iota
)

// Mode defines the interface for input modes.
type Mode interface {
	// Name returns the unique mode identifier (e.g. "normal", "insert").
	Name() string

	// Enter is called when the mode becomes active.
	Enter(ctx *Context)

	// Exit is called when the mode is left.
	Exit(ctx *Context)

	// HandleKey processes one resolved symbol.
	HandleKey(ctx *Context, sym byte) Result
}

// Context carries shared state into mode transitions and key handling.
type Context struct {
	// Manager gives handlers access to mode switching and flags.
	Manager *Manager

	// Extra holds mode-specific data.
	Extra map[string]any
}

// Func bundles plain functions into a Mode, for modes that need no
// state of their own.
type Func struct {
	ModeName string
	OnEnter  func(ctx *Context)
	OnExit   func(ctx *Context)
	OnKey    func(ctx *Context, sym byte) Result
}

// Name implements Mode.
func (f *Func) Name() string { return f.ModeName }

// Enter implements Mode.
func (f *Func) Enter(ctx *Context) {
	if f.OnEnter != nil {
		f.OnEnter(ctx)
	}
}

// Exit implements Mode.
func (f *Func) Exit(ctx *Context) {
	if f.OnExit != nil {
		f.OnExit(ctx)
	}
}

// HandleKey implements Mode.
func (f *Func) HandleKey(ctx *Context, sym byte) Result {
	if f.OnKey == nil {
		return ResultComplete
	}
	return f.OnKey(ctx, sym)
}
