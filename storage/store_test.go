package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirReadMissing(t *testing.T) {
	d := NewDir(t.TempDir(), ".dat")
	_, err := d.Read("nope")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDirWriteNoClobber(t *testing.T) {
	d := NewDir(filepath.Join(t.TempDir(), "levels"), ".dat")

	require.NoError(t, d.Write("one", []byte{1, 2, 3}))
	err := d.Write("one", []byte{9})
	require.ErrorIs(t, err, fs.ErrExist)

	got, err := d.Read("one")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestDirWriteLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root, ".dat")
	require.NoError(t, d.Write("a", []byte("x")))
	_ = d.Write("a", []byte("y"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.dat", entries[0].Name())
}

func TestDirListAndRemove(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root, ".dat")
	for _, n := range []string{"b", "a", "c"} {
		require.NoError(t, d.Write(n, []byte(n)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), nil, 0o644))

	names, err := d.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	require.NoError(t, d.Remove("b"))
	require.NoError(t, d.Remove("b"))
	names, err = d.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, names)

	empty := NewDir(filepath.Join(root, "missing"), ".dat")
	names, err = empty.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDirName(t *testing.T) {
	d := NewDir("levels", ".dat")
	cases := []struct {
		path string
		name string
		ok   bool
	}{
		{"levels/one.dat", "one", true},
		{"/abs/levels/two.dat", "two", true},
		{"levels/.one-123.tmp", "", false},
		{"levels/readme.md", "", false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			name, ok := d.Name(c.path)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.name, name)
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte{1, 2, 3})
	assert.Equal(t, a, Fingerprint([]byte{1, 2, 3}))
	assert.NotEqual(t, a, Fingerprint([]byte{1, 2, 4}))
}

func TestWatcherReportsLevelWrites(t *testing.T) {
	d := NewDir(t.TempDir(), ".dat")
	w, err := NewWatcher(d)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, d.Write("first", []byte{1}))

	select {
	case name := <-w.Events:
		assert.Equal(t, "first", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for first")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	_, open := <-w.Events
	for open {
		_, open = <-w.Events
	}
}
