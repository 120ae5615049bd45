package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	cfg.Logger = NewLogger(LoggerConfig{Output: io.Discard})
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return a
}

func TestModalTyping(t *testing.T) {
	a := newTestApp(t, Config{})

	if got := a.modes.CurrentName(); got != ModeNormal {
		t.Fatalf("initial mode = %q, want %q", got, ModeNormal)
	}

	a.res.Submit([]byte("i"))
	if got := a.modes.CurrentName(); got != ModeInsert {
		t.Fatalf("mode after 'i' = %q, want %q", got, ModeInsert)
	}

	a.res.Submit([]byte("hi"))
	if got := string(a.text); got != "hi" {
		t.Errorf("text = %q, want %q", got, "hi")
	}

	a.res.Submit([]byte{0x1b})
	if got := a.modes.CurrentName(); got != ModeNormal {
		t.Errorf("mode after escape = %q, want %q", got, ModeNormal)
	}

	a.res.Submit([]byte("x"))
	if got := string(a.text); got != "h" {
		t.Errorf("text after 'x' = %q, want %q", got, "h")
	}
}

func TestCommandLine(t *testing.T) {
	a := newTestApp(t, Config{})

	a.res.Submit([]byte(":map insert jk <Esc>\n"))
	if a.table.Len() != 1 {
		t.Errorf("Len() after :map = %d, want 1", a.table.Len())
	}
	if got := a.modes.CurrentName(); got != ModeNormal {
		t.Fatalf("mode after command = %q, want %q", got, ModeNormal)
	}

	// The new mapping is live: jk now leaves insert mode.
	a.res.Submit([]byte("i"))
	a.res.Submit([]byte("jk"))
	if got := a.modes.CurrentName(); got != ModeNormal {
		t.Errorf("mode after jk = %q, want %q", got, ModeNormal)
	}

	a.res.Submit([]byte(":unmap insert jk\n"))
	if a.table.Len() != 0 {
		t.Errorf("Len() after :unmap = %d, want 0", a.table.Len())
	}

	a.res.Submit([]byte(":q\n"))
	if !a.quit {
		t.Error("quit = false after :q, want true")
	}
}

// waitUntil polls cond until it holds or the deadline passes.
func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// An ambiguous prefix left to expire must be resolved on the event-loop
// goroutine: the fired timer arrives as a posted event, so mode handlers
// never mutate application state concurrently with the render loop.
func TestTimeoutResolvesOnEventLoop(t *testing.T) {
	a := newTestApp(t, Config{Window: 20 * time.Millisecond})
	a.table.Insert(ModeInsert, "jk", "<Esc>")
	a.res.Submit([]byte("i"))

	sim := tcell.NewSimulationScreen("")
	done := make(chan error, 1)
	go func() { done <- a.run(sim) }()

	waitUntil(t, "event loop start", func() bool {
		a.timers.mu.Lock()
		defer a.timers.mu.Unlock()
		return a.timers.screen != nil
	})

	sim.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	waitUntil(t, "ambiguous prefix", func() bool {
		return a.res.Pending() == "j"
	})
	waitUntil(t, "timeout resolution", func() bool {
		return a.res.Pending() == ""
	})

	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if err := <-done; err != nil {
		t.Fatalf("run() error: %v", err)
	}

	if got := string(a.text); got != "j" {
		t.Errorf("text after timeout = %q, want %q", got, "j")
	}
	if got := a.modes.CurrentName(); got != ModeInsert {
		t.Errorf("mode after timeout = %q, want %q", got, ModeInsert)
	}
}

func TestLoadMappingsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.toml")
	content := `
[[map]]
mode = "normal"
from = "gg"
to   = "<C-a>"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, Config{MappingFile: path})
	if a.table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.table.Len())
	}
}

func TestLoadMappingsUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.yaml")
	if err := os.WriteFile(path, []byte("map: []"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		MappingFile: path,
		Logger:      NewLogger(LoggerConfig{Output: io.Discard}),
	}
	if _, err := New(cfg); err == nil {
		t.Error("New() with unsupported mapping format = nil error, want error")
	}
}

func TestLuaScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	script := `remap.map("insert", "jk", "<Esc>")`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, Config{ScriptFile: path})
	if a.table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.table.Len())
	}

	// jk in insert mode resolves to escape and drops back to normal.
	a.res.Submit([]byte("i"))
	a.res.Submit([]byte("jk"))
	a.res.Submit(nil) // flush any ambiguity
	if got := a.modes.CurrentName(); got != ModeNormal {
		t.Errorf("mode after jk = %q, want %q", got, ModeNormal)
	}
}
