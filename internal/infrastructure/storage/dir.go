package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the replay blob file extension.
const Ext = ".grp"

// Dir stores one replay per file under a base directory. The file stem
// is the replay name.
type Dir struct {
	base string
}

// NewDir creates a directory store rooted at base.
func NewDir(base string) *Dir {
	return &Dir{base: base}
}

// ReadBlob reads the named replay file.
func (d *Dir) ReadBlob(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.base, name+Ext))
	if err != nil {
		return nil, fmt.Errorf("failed to read replay %s: %w", name, err)
	}
	return data, nil
}

// ListNames returns the names of all replay files, sorted.
func (d *Dir) ListNames() ([]string, error) {
	entries, err := os.ReadDir(d.base)
	if err != nil {
		return nil, fmt.Errorf("failed to list replays: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// DeleteBlob removes the named replay file.
func (d *Dir) DeleteBlob(name string) error {
	if err := os.Remove(filepath.Join(d.base, name+Ext)); err != nil {
		return fmt.Errorf("failed to delete replay %s: %w", name, err)
	}
	return nil
}
