package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-websettings/pkg/panel"
)

// Document maps panel identifiers to setting names to canonical values.
type Document map[string]map[string]string

// Capture collects the persistable, named settings of panels. Values are
// taken from String, so Restore round-trips them through SetFromString.
func Capture(panels []*panel.Panel) Document {
	doc := make(Document, len(panels))
	for _, p := range panels {
		if p == nil {
			continue
		}
		values := make(map[string]string)
		for _, s := range p.Settings() {
			if s.Name() == "" || !s.Persistable() {
				continue
			}
			values[s.Name()] = s.String()
		}
		if len(values) > 0 {
			doc[p.Identifier()] = values
		}
	}
	return doc
}

// Restore applies doc to panels and returns the number of settings updated.
// Unknown panels and names are ignored; settings missing from doc keep their
// current value.
func Restore(panels []*panel.Panel, doc Document) int {
	restored := 0
	for _, p := range panels {
		if p == nil {
			continue
		}
		values, ok := doc[p.Identifier()]
		if !ok {
			continue
		}
		for _, s := range p.Settings() {
			if s.Name() == "" || !s.Persistable() {
				continue
			}
			if v, ok := values[s.Name()]; ok {
				s.SetFromString(v)
				restored++
			}
		}
	}
	return restored
}

// Panels lists the panel identifiers in doc in sorted order.
func (d Document) Panels() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// File persists a Document as YAML.
type File struct {
	Path string
	Perm os.FileMode
}

// NewFile returns a store for path with owner-only permissions, since
// documents include passwords.
func NewFile(path string) *File {
	return &File{Path: path, Perm: 0o600}
}

// Load reads the document. A missing file yields an empty document.
func (f *File) Load() (Document, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", f.Path, err)
	}

	doc := Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", f.Path, err)
	}
	return doc, nil
}

// Save writes doc atomically by renaming a temporary file over Path.
func (f *File) Save(doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return fmt.Errorf("store: stage %s: %w", f.Path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: write %s: %w", f.Path, err)
	}

	perm := f.Perm
	if perm == 0 {
		perm = 0o600
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("store: chmod %s: %w", f.Path, err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("store: install %s: %w", f.Path, err)
	}
	return nil
}

// SavePanels captures panels and saves the result.
func (f *File) SavePanels(panels []*panel.Panel) error {
	return f.Save(Capture(panels))
}

// LoadPanels loads the document and restores it into panels.
func (f *File) LoadPanels(panels []*panel.Panel) (int, error) {
	doc, err := f.Load()
	if err != nil {
		return 0, err
	}
	return Restore(panels, doc), nil
}
