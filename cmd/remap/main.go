// Package main is the entry point for the remap demo terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dshills/remap/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		mappingFile = flag.String("mappings", "", "TOML or JSON mapping-definition file")
		scriptFile  = flag.String("script", "", "Lua configuration script")
		window      = flag.Duration("window", time.Second, "disambiguation window for ambiguous key prefixes")
		logLevel    = flag.String("log-level", "info", "log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("remap %s (%s)\n", version, commit)
		return 0
	}

	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(*logLevel)

	application, err := app.New(app.Config{
		MappingFile: *mappingFile,
		ScriptFile:  *scriptFile,
		Window:      *window,
		Logger:      app.NewLogger(logCfg),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
