package level

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/automoto/skidrift/storage"
	"go.uber.org/zap"
)

// Library owns the current level and moves it to and from a store. A failed
// load never touches the current level.
type Library struct {
	codec Codec
	store storage.Store
	log   *zap.Logger

	current     *Level
	name        string
	fingerprint uint64
}

func NewLibrary(codec Codec, store storage.Store, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{codec: codec, store: store, log: log}
}

// Current returns the loaded level, or nil.
func (lib *Library) Current() *Level {
	return lib.current
}

// Name returns the name the current level was loaded or saved under.
func (lib *Library) Name() string {
	return lib.name
}

func (lib *Library) Codec() Codec {
	return lib.codec
}

// Load reads and decodes name, then replaces the current level with it.
func (lib *Library) Load(name string) (*Level, error) {
	data, err := lib.read(name)
	if err != nil {
		return nil, err
	}
	return lib.swap(name, data)
}

// Reload loads name again unless its bytes match what is already loaded
// under that name. It reports whether the level was replaced.
func (lib *Library) Reload(name string) (bool, error) {
	data, err := lib.read(name)
	if err != nil {
		return false, err
	}
	if lib.current != nil && lib.name == name && storage.Fingerprint(data) == lib.fingerprint {
		lib.log.Debug("level unchanged", zap.String("name", name))
		return false, nil
	}
	if _, err := lib.swap(name, data); err != nil {
		return false, err
	}
	return true, nil
}

// Save encodes the current level and writes it as name. Existing files are
// never replaced.
func (lib *Library) Save(name string) error {
	if lib.current == nil {
		return fmt.Errorf("save %s: %w", name, ErrNoLevel)
	}
	data, err := lib.codec.Encode(lib.current)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := lib.store.Write(name, data); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("save %s: %w", name, ErrFileAlreadyExists)
		}
		return fmt.Errorf("save %s: %w", name, err)
	}

	lib.current.Version = lib.codec.Current
	lib.name = name
	lib.fingerprint = storage.Fingerprint(data)
	lib.log.Info("level saved",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
		zap.Int("tiles", len(lib.current.Tiles)),
		zap.Int("emitters", len(lib.current.Emitters)),
	)
	return nil
}

// Set replaces the current level with one built elsewhere, such as an
// imported map or a fresh editor level.
func (lib *Library) Set(name string, l *Level) {
	if l != nil && lib.current == l {
		if lib.name != name {
			lib.name = name
			lib.fingerprint = 0
		}
		return
	}
	lib.Unload()
	lib.current = l
	lib.name = name
}

// Unload releases the current level.
func (lib *Library) Unload() {
	if lib.current == nil {
		return
	}
	lib.current.Release()
	lib.current = nil
	lib.name = ""
	lib.fingerprint = 0
}

func (lib *Library) read(name string) ([]byte, error) {
	data, err := lib.store.Read(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", name, ErrFileNotFound)
		}
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return data, nil
}

func (lib *Library) swap(name string, data []byte) (*Level, error) {
	l, err := lib.codec.Decode(data)
	if err != nil {
		lib.log.Warn("level rejected", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	lib.Unload()
	lib.current = l
	lib.name = name
	lib.fingerprint = storage.Fingerprint(data)
	lib.log.Info("level loaded",
		zap.String("name", name),
		zap.Uint8("version", l.Version),
		zap.Int("tiles", len(l.Tiles)),
		zap.Int("emitters", len(l.Emitters)),
	)
	return l, nil
}
