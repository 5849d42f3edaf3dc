package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrMalformedVersions = errors.New("config: malformed version file")

// Versions is the level format policy: the version stamped on save and the
// versions accepted on load.
type Versions struct {
	Current   uint8
	Supported []uint8
}

// LoadVersions reads a version file of key=value lines:
//
//	current_version=2
//	supported_versions=1 2
func LoadVersions(path string) (Versions, error) {
	f, err := os.Open(path)
	if err != nil {
		return Versions{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	defer f.Close()

	v, err := ParseVersions(f)
	if err != nil {
		return Versions{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return v, nil
}

// ParseVersions reads the version file format from r. Blank lines and lines
// starting with # are ignored. A missing supported list means only the
// current version is accepted.
func ParseVersions(r io.Reader) (Versions, error) {
	var (
		v          Versions
		hasCurrent bool
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return Versions{}, fmt.Errorf("line %d: missing '=': %w", line, ErrMalformedVersions)
		}
		switch strings.TrimSpace(key) {
		case "current_version":
			n, err := parseVersion(value)
			if err != nil {
				return Versions{}, fmt.Errorf("line %d: %w", line, err)
			}
			v.Current = n
			hasCurrent = true
		case "supported_versions":
			v.Supported = v.Supported[:0]
			for _, field := range strings.Fields(value) {
				n, err := parseVersion(field)
				if err != nil {
					return Versions{}, fmt.Errorf("line %d: %w", line, err)
				}
				v.Supported = append(v.Supported, n)
			}
		default:
			return Versions{}, fmt.Errorf("line %d: unknown key %q: %w", line, key, ErrMalformedVersions)
		}
	}
	if err := sc.Err(); err != nil {
		return Versions{}, err
	}
	if !hasCurrent {
		return Versions{}, fmt.Errorf("no current_version: %w", ErrMalformedVersions)
	}
	if len(v.Supported) == 0 {
		v.Supported = []uint8{v.Current}
	}
	return v, nil
}

func parseVersion(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("version %q: %w", s, ErrMalformedVersions)
	}
	return uint8(n), nil
}
