package loader

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/remap/internal/input/maptable"
	"github.com/dshills/remap/internal/input/notation"
)

// JSONLoader loads mapping definitions from JSON files.
// The schema mirrors the TOML form: {"map": [{"mode", "from", "to"}]}.
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads bindings from the configured path.
func (l *JSONLoader) Load() ([]Binding, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads bindings from a specific path.
func (l *JSONLoader) LoadFrom(path string) ([]Binding, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading mapping file %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing mapping file %s: invalid JSON", path)
	}

	var bindings []Binding
	gjson.GetBytes(data, "map").ForEach(func(_, entry gjson.Result) bool {
		bindings = append(bindings, Binding{
			Mode: entry.Get("mode").String(),
			From: entry.Get("from").String(),
			To:   entry.Get("to").String(),
		})
		return true
	})
	return bindings, nil
}

// ExportJSON renders the table's current entries as a JSON mapping file.
// Entries are written oldest-first so that loading the result rebuilds
// the same scan order.
func ExportJSON(table *maptable.Table) ([]byte, error) {
	data := []byte(`{"map":[]}`)

	mappings := table.Mappings("")
	// Snapshot order is newest-first; reverse it for the file.
	for i := len(mappings) - 1; i >= 0; i-- {
		m := mappings[i]
		entry := map[string]string{
			"mode": m.Mode,
			"from": notation.Unparse(m.Input),
			"to":   notation.Unparse(m.Output),
		}
		var err error
		data, err = sjson.SetBytes(data, "map.-1", entry)
		if err != nil {
			return nil, fmt.Errorf("exporting mappings: %w", err)
		}
	}
	return data, nil
}
