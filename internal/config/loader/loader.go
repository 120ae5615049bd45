// Package loader reads mapping definitions from configuration files.
//
// Two formats are supported: TOML and JSON. Both describe the same
// schema, a list of map entries with a mode, a left-hand side, and a
// right-hand side in key notation:
//
//	[[map]]
//	mode = "normal"
//	from = "gg"
//	to   = "<C-a>"
package loader

import (
	"io/fs"
	"os"

	"github.com/dshills/remap/internal/input/maptable"
)

// Binding is one mapping definition as it appears in a config file.
// From and To use key notation (see the notation package).
type Binding struct {
	Mode string `toml:"mode" json:"mode"`
	From string `toml:"from" json:"from"`
	To   string `toml:"to" json:"to"`
}

// Loader is the interface for mapping-definition loaders.
type Loader interface {
	// Load reads bindings from the source.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() ([]Binding, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Apply inserts the bindings into the table in file order. Because the
// table scans newest-first, later file entries shadow earlier duplicates,
// matching the "last definition wins" behavior users expect from config
// files.
func Apply(table *maptable.Table, bindings []Binding) {
	for _, b := range bindings {
		table.Insert(b.Mode, b.From, b.To)
	}
}
