// Package app wires the remapping engine to a terminal: it captures key
// events, reduces them to raw symbols, feeds the resolver, and renders
// the typed text plus the pending-keys feedback line.
package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/remap/internal/config/loader"
	"github.com/dshills/remap/internal/input/maptable"
	"github.com/dshills/remap/internal/input/mode"
	"github.com/dshills/remap/internal/input/resolver"
	luaplugin "github.com/dshills/remap/internal/plugin/lua"
)

// Mode names used by the demo.
const (
	ModeNormal  = "normal"
	ModeInsert  = "insert"
	ModeCommand = "command"
)

// Config configures the application.
type Config struct {
	// MappingFile is an optional TOML or JSON mapping-definition file.
	MappingFile string

	// ScriptFile is an optional Lua configuration script.
	ScriptFile string

	// Window is the disambiguation window for ambiguous key prefixes.
	Window time.Duration

	// Logger receives application logs. Defaults to the standard
	// logger configuration.
	Logger *Logger
}

// App is the interactive demo: a minimal modal typing surface whose
// every keystroke passes through the remapping engine.
type App struct {
	log    *Logger
	table  *maptable.Table
	modes  *mode.Manager
	res    *resolver.Resolver
	timers *eventScheduler

	screen tcell.Screen
	text   []byte
	cmd    []byte
	quit   bool
}

// New builds the application: mapping table, modes, resolver, and any
// configured mapping files or scripts.
func New(cfg Config) (*App, error) {
	log := cfg.Logger
	if log == nil {
		log = NewLogger(DefaultLoggerConfig())
	}

	a := &App{
		log:    log,
		table:  maptable.New(),
		modes:  mode.NewManager(),
		timers: &eventScheduler{},
	}

	a.registerModes()
	if err := a.modes.Enter(ModeNormal); err != nil {
		return nil, err
	}

	a.res = resolver.New(a.table, a.modes, resolver.DispatcherFunc(a.handleKey), resolver.Config{
		Window:    cfg.Window,
		Scheduler: a.timers,
	})

	if cfg.MappingFile != "" {
		if err := a.loadMappings(cfg.MappingFile); err != nil {
			return nil, err
		}
	}
	if cfg.ScriptFile != "" {
		rt := luaplugin.NewRuntime(a.table, a.res)
		defer rt.Close()
		if err := rt.DoFile(cfg.ScriptFile); err != nil {
			return nil, err
		}
	}

	log.Info("loaded %d mappings", a.table.Len())
	return a, nil
}

// loadMappings reads a mapping-definition file, picking the format by
// extension.
func (a *App) loadMappings(path string) error {
	var (
		bindings []loader.Binding
		err      error
	)
	switch filepath.Ext(path) {
	case ".json":
		bindings, err = loader.NewJSONLoader(path).Load()
	case ".toml":
		bindings, err = loader.NewTOMLLoader(path).Load()
	default:
		return fmt.Errorf("mapping file %s: unsupported format", path)
	}
	if err != nil {
		return err
	}
	loader.Apply(a.table, bindings)
	return nil
}

// registerModes installs the demo's normal, insert, and command modes.
func (a *App) registerModes() {
	a.modes.Register(&mode.Func{
		ModeName: ModeNormal,
		OnKey:    a.normalKey,
	})
	a.modes.Register(&mode.Func{
		ModeName: ModeInsert,
		OnKey:    a.insertKey,
	})
	a.modes.Register(&mode.Func{
		ModeName: ModeCommand,
		OnEnter:  func(*mode.Context) { a.cmd = append(a.cmd[:0], ':') },
		OnExit:   func(*mode.Context) { a.cmd = a.cmd[:0] },
		OnKey:    a.commandKey,
	})
}

// normalKey handles resolved symbols in normal mode.
func (a *App) normalKey(ctx *mode.Context, sym byte) mode.Result {
	switch sym {
	case 'i':
		_ = ctx.Manager.Enter(ModeInsert)
	case 'q':
		a.quit = true
	case ':':
		_ = ctx.Manager.Enter(ModeCommand)
	case 'x':
		if n := len(a.text); n > 0 {
			a.text = a.text[:n-1]
		}
	}
	return mode.ResultComplete
}

// commandKey accumulates a ':' command line until <CR> executes it.
// Accumulation reports ResultMore so the line stays visible.
func (a *App) commandKey(ctx *mode.Context, sym byte) mode.Result {
	switch sym {
	case '\n':
		a.runCommand(string(a.cmd[1:]))
		_ = ctx.Manager.Enter(ModeNormal)
		return mode.ResultComplete
	case 0x1b:
		_ = ctx.Manager.Enter(ModeNormal)
		return mode.ResultComplete
	case 0x08:
		if len(a.cmd) > 1 {
			a.cmd = a.cmd[:len(a.cmd)-1]
			return mode.ResultMore
		}
		_ = ctx.Manager.Enter(ModeNormal)
		return mode.ResultComplete
	default:
		a.cmd = append(a.cmd, sym)
		return mode.ResultMore
	}
}

// insertKey handles resolved symbols in insert mode.
func (a *App) insertKey(ctx *mode.Context, sym byte) mode.Result {
	switch {
	case sym == 0x1b:
		_ = ctx.Manager.Enter(ModeNormal)
	case sym == 0x08:
		if n := len(a.text); n > 0 {
			a.text = a.text[:n-1]
		}
	case sym == '\n' || sym >= 0x20:
		a.text = append(a.text, sym)
	}
	return mode.ResultComplete
}

// runCommand executes a ':' command line.
//
//	:map <mode> <lhs> <rhs>
//	:unmap <mode> <lhs>
//	:q
func (a *App) runCommand(cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "q", "quit":
		a.quit = true
	case "map":
		if len(fields) == 4 {
			a.table.Insert(fields[1], fields[2], fields[3])
		}
	case "unmap":
		if len(fields) == 3 {
			if !a.table.Delete(fields[1], fields[2]) {
				a.log.Warn("no mapping for %s in %s mode", fields[2], fields[1])
			}
		}
	default:
		a.log.Warn("unknown command: %s", fields[0])
	}
}

// handleKey is the resolver's downstream sink.
func (a *App) handleKey(modeName string, sym byte) bool {
	return a.modes.HandleKey(modeName, sym)
}

// Run enters the terminal event loop and blocks until quit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	return a.run(screen)
}

// run drives the event loop against an initialized-on-entry screen. Fired
// disambiguation timers arrive as eventTimeout events, so the resolver
// only ever dispatches into the modes on this goroutine.
func (a *App) run(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	a.screen = screen
	a.timers.attach(screen)
	defer a.timers.detach()
	defer screen.Fini()

	for !a.quit {
		a.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				a.quit = true
				break
			}
			if sym, ok := ReduceKey(ev); ok {
				a.res.Submit([]byte{sym})
			}
		case *eventTimeout:
			ev.fire()
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return nil
		}
	}
	return nil
}

// draw renders the typed text and the status line.
func (a *App) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()

	style := tcell.StyleDefault
	x, y := 0, 0
	for _, b := range a.text {
		if b == '\n' || x >= width {
			x, y = 0, y+1
			if b == '\n' {
				continue
			}
		}
		a.screen.SetContent(x, y, rune(b), nil, style)
		x++
	}

	status := fmt.Sprintf("-- %s --", strings.ToUpper(a.modes.CurrentName()))
	if len(a.cmd) > 0 {
		status = string(a.cmd)
	}
	if pending := a.res.Pending(); pending != "" {
		status += "  " + pending
	}
	statusStyle := style.Reverse(true)
	for i := 0; i < width; i++ {
		r := ' '
		if i < len(status) {
			r = rune(status[i])
		}
		a.screen.SetContent(i, height-1, r, nil, statusStyle)
	}
	a.screen.Show()
}
