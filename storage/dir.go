package storage

import (
	"fmt"
	"os"
)

// Dir is a temporary directory on local disk, created for one browser
// process's user-data-dir and removed once that process no longer needs
// it.
type Dir struct {
	Dir     string
	removed bool
}

// Make creates a fresh temporary directory under baseDir whose name starts
// with prefix, and records its path in d.Dir.
func (d *Dir) Make(baseDir, prefix string) error {
	dir, err := os.MkdirTemp(baseDir, prefix)
	if err != nil {
		return fmt.Errorf("creating a temporary directory: %w", err)
	}
	d.Dir = dir
	return nil
}

// Cleanup removes the directory tree, once, ignoring a second call.
func (d *Dir) Cleanup() error {
	if d.removed || d.Dir == "" {
		return nil
	}
	d.removed = true
	if err := os.RemoveAll(d.Dir); err != nil {
		return fmt.Errorf("removing temporary directory %q: %w", d.Dir, err)
	}
	return nil
}
