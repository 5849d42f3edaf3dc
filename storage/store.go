// Package storage keeps level files. Every Store refuses to overwrite and
// reports missing names with fs.ErrNotExist, so callers can map both cases
// onto their own errors with errors.Is.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Store reads and writes named blobs.
type Store interface {
	// Read fails with fs.ErrNotExist when name is absent.
	Read(name string) ([]byte, error)
	// Write fails with fs.ErrExist when name is already present.
	Write(name string, data []byte) error
}

// Fingerprint hashes level bytes so reloads can skip unchanged content.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Dir stores one file per name under Root, named name+Ext.
type Dir struct {
	Root string
	Ext  string
}

var _ Store = (*Dir)(nil)

func NewDir(root, ext string) *Dir {
	return &Dir{Root: root, Ext: ext}
}

// Path returns the file backing name.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.Root, name+d.Ext)
}

func (d *Dir) Read(name string) ([]byte, error) {
	return os.ReadFile(d.Path(name))
}

// Write stores data under name. The bytes go to a temp file first and are
// hard-linked into place, so a crash never leaves a half-written level and an
// existing file is never replaced.
func (d *Dir) Write(name string, data []byte) error {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("create level dir: %w", err)
	}
	path := d.Path(name)
	if _, err := os.Stat(path); err == nil {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrExist}
	}

	tmp, err := os.CreateTemp(d.Root, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	// Link fails with EEXIST if another writer got there first.
	if err := os.Link(tmp.Name(), path); err != nil {
		return err
	}
	return nil
}

// Remove deletes name. A missing name is not an error.
func (d *Dir) Remove(name string) error {
	err := os.Remove(d.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns the stored names in lexical order.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, ".") || filepath.Ext(n) != d.Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(n, d.Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Name maps a file path back to a stored name, if it belongs to d.
func (d *Dir) Name(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || filepath.Ext(base) != d.Ext {
		return "", false
	}
	return strings.TrimSuffix(base, d.Ext), true
}
