package level

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedVersion = errors.New("level: unsupported version")
	ErrFileNotFound       = errors.New("level: file not found")
	ErrFileAlreadyExists  = errors.New("level: file already exists")
	ErrCorruptData        = errors.New("level: corrupt data")
	ErrValueOutOfRange    = errors.New("level: value out of range")
	ErrNoLevel            = errors.New("level: no level loaded")
)

// CorruptDataError locates a decode failure. It matches ErrCorruptData.
type CorruptDataError struct {
	Offset int
	Reason string
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("level: corrupt data at offset %d: %s", e.Offset, e.Reason)
}

func (e *CorruptDataError) Is(target error) bool {
	return target == ErrCorruptData
}
