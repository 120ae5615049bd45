package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader loads mapping definitions from TOML files.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads bindings from the configured path.
func (l *TOMLLoader) Load() ([]Binding, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads bindings from a specific path.
func (l *TOMLLoader) LoadFrom(path string) ([]Binding, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading mapping file %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadFromReader reads bindings from an io.Reader.
func (l *TOMLLoader) LoadFromReader(r io.Reader) ([]Binding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading mappings: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *TOMLLoader) parse(path string, data []byte) ([]Binding, error) {
	var file struct {
		Maps []Binding `toml:"map"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing mapping file %s: %w", path, err)
	}
	return file.Maps, nil
}
