package systems

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

const sessionKey = "session"

// ItemStore is the subset of storage.Profile the session needs.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Session is what the game remembers between runs.
type Session struct {
	LastLevel string `json:"lastLevel"`
	Debug     bool   `json:"debug"`
}

// LoadSession reads the saved session. A missing session is nil, nil.
func LoadSession(store ItemStore) (*Session, error) {
	data, err := store.LoadItem(sessionKey)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

func SaveSession(store ItemStore, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := store.SaveItem(sessionKey, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
