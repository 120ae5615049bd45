package loader

import (
	"io/fs"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/remap/internal/input/maptable"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/maps.toml", `
[[map]]
mode = "normal"
from = "gg"
to   = "<C-a>"

[[map]]
mode = "insert"
from = "jk"
to   = "<Esc>"
`)

	bindings, err := NewTOMLLoaderWithFS(memfs, "/maps.toml").Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("len(bindings) = %d, want 2", len(bindings))
	}

	want := []Binding{
		{Mode: "normal", From: "gg", To: "<C-a>"},
		{Mode: "insert", From: "jk", To: "<Esc>"},
	}
	for i, b := range bindings {
		if b != want[i] {
			t.Errorf("bindings[%d] = %+v, want %+v", i, b, want[i])
		}
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	bindings, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	if err != nil {
		t.Errorf("Load() of missing file error: %v, want nil", err)
	}
	if bindings != nil {
		t.Errorf("Load() of missing file = %v, want nil", bindings)
	}
}

func TestTOMLLoader_Invalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", `[[map`)

	if _, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load(); err == nil {
		t.Error("Load() of invalid TOML = nil error, want error")
	}
}

func TestJSONLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/maps.json", `{
		"map": [
			{"mode": "normal", "from": "gg", "to": "<C-a>"},
			{"mode": "normal", "from": "q", "to": "<CR>"}
		]
	}`)

	bindings, err := NewJSONLoaderWithFS(memfs, "/maps.json").Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("len(bindings) = %d, want 2", len(bindings))
	}
	if bindings[0].From != "gg" || bindings[1].To != "<CR>" {
		t.Errorf("bindings = %+v", bindings)
	}
}

func TestJSONLoader_Invalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.json", `{"map": [`)

	if _, err := NewJSONLoaderWithFS(memfs, "/bad.json").Load(); err == nil {
		t.Error("Load() of invalid JSON = nil error, want error")
	}
}

func TestApply(t *testing.T) {
	table := maptable.New()
	Apply(table, []Binding{
		{Mode: "normal", From: "a", To: "1"},
		{Mode: "normal", From: "a", To: "2"},
	})

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	// Later file entries shadow earlier duplicates.
	var first *maptable.Mapping
	table.Each("normal", func(m *maptable.Mapping) bool {
		first = m
		return false
	})
	if string(first.Output) != "2" {
		t.Errorf("first scanned entry output = %q, want %q", first.Output, "2")
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	table := maptable.New()
	table.Insert("normal", "gg", "<C-a>")
	table.Insert("insert", "jk", "<Esc>")

	data, err := ExportJSON(table)
	if err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	if !gjson.ValidBytes(data) {
		t.Fatalf("ExportJSON() produced invalid JSON: %s", data)
	}

	memfs := NewMemFS()
	memfs.AddFile("/export.json", string(data))
	bindings, err := NewJSONLoaderWithFS(memfs, "/export.json").Load()
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}

	reloaded := maptable.New()
	Apply(reloaded, bindings)
	if reloaded.Len() != 2 {
		t.Fatalf("reloaded Len() = %d, want 2", reloaded.Len())
	}

	// Scan order must survive the round trip.
	orig := table.Mappings("")
	got := reloaded.Mappings("")
	for i := range orig {
		if string(orig[i].Input) != string(got[i].Input) ||
			string(orig[i].Output) != string(got[i].Output) ||
			orig[i].Mode != got[i].Mode {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], orig[i])
		}
	}
}
