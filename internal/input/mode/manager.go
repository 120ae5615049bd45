package mode

import "fmt"

// Manager registers modes, tracks the active one, and owns the transient
// flag bits the resolver consults while dispatching. It follows the
// engine's single-threaded model and needs no locking of its own.
type Manager struct {
	modes    map[string]Mode
	current  Mode
	previous Mode
	flags    Flag
	context  *Context
}

// NewManager creates an empty mode manager.
func NewManager() *Manager {
	m := &Manager{
		modes: make(map[string]Mode),
	}
	m.context = &Context{
		Manager: m,
		Extra:   make(map[string]any),
	}
	return m
}

// Register adds a mode. A mode with the same name is replaced.
func (m *Manager) Register(mode Mode) {
	m.modes[mode.Name()] = mode
}

// Enter switches to the named mode, calling Exit on the current mode and
// Enter on the new one. Transient flags are cleared on every switch.
func (m *Manager) Enter(name string) error {
	next, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}

	if m.current != nil {
		m.current.Exit(m.context)
	}
	m.previous = m.current
	m.current = next
	m.flags = 0
	next.Enter(m.context)
	return nil
}

// CurrentName returns the active mode's name, or empty if none is set.
func (m *Manager) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// PreviousName returns the name of the mode active before the current
// one, or empty.
func (m *Manager) PreviousName() string {
	if m.previous == nil {
		return ""
	}
	return m.previous.Name()
}

// HandleKey routes one resolved symbol to the named mode's handler and
// reports whether the mode needs more symbols to finish its current
// command unit.
func (m *Manager) HandleKey(name string, sym byte) (more bool) {
	mode, ok := m.modes[name]
	if !ok {
		return false
	}
	return mode.HandleKey(m.context, sym) == ResultMore
}

// SetNoRemap forces the next dispatched symbol to be taken literally.
func (m *Manager) SetNoRemap() {
	m.flags |= FlagNoRemap
}

// NoRemap reports whether the no-remap flag is currently set.
func (m *Manager) NoRemap() bool {
	return m.flags&FlagNoRemap != 0
}

// ClearNoRemap removes the no-remap flag.
func (m *Manager) ClearNoRemap() {
	m.flags &^= FlagNoRemap
}

// Context returns the shared mode context.
func (m *Manager) Context() *Context {
	return m.context
}
