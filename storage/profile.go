package storage

import (
	"fmt"
	"io/fs"

	"github.com/quasilyte/gdata"
)

const draftPrefix = "draft_"

// Profile keeps per-user level drafts and session data in the platform's
// app data location.
type Profile struct {
	m *gdata.Manager
}

var _ Store = (*Profile)(nil)

// OpenProfile opens the data store for app.
func OpenProfile(app string) (*Profile, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: app,
	})
	if err != nil {
		return nil, fmt.Errorf("open profile %s: %w", app, err)
	}
	return &Profile{m: m}, nil
}

// Read loads a draft.
func (p *Profile) Read(name string) ([]byte, error) {
	return p.load(draftPrefix + name)
}

// Write saves a draft. Existing drafts are never replaced.
func (p *Profile) Write(name string, data []byte) error {
	return p.saveNew(draftPrefix+name, data)
}

// Discard removes a draft so the name can be written again.
func (p *Profile) Discard(name string) error {
	return p.m.DeleteItem(draftPrefix + name)
}

// LoadItem reads a non-draft item such as session state.
func (p *Profile) LoadItem(key string) ([]byte, error) {
	return p.load(key)
}

// SaveItem replaces a non-draft item.
func (p *Profile) SaveItem(key string, data []byte) error {
	return p.m.SaveItem(key, data)
}

func (p *Profile) load(key string) ([]byte, error) {
	data, err := p.m.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if data == nil {
		return nil, &fs.PathError{Op: "read", Path: key, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (p *Profile) saveNew(key string, data []byte) error {
	existing, err := p.m.LoadItem(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if existing != nil {
		return &fs.PathError{Op: "write", Path: key, Err: fs.ErrExist}
	}
	return p.m.SaveItem(key, data)
}
