package storage

import "fmt"

// ErrAlreadyExists defines duplicated entry.
type ErrAlreadyExists struct {
	UniqueID string
}

// Error formats output.
func (e *ErrAlreadyExists) Error() string {
	return fmt.Sprintf("entry %s already exists", e.UniqueID)
}

// ErrInvalidEntry defines entry which failed validation.
type ErrInvalidEntry struct {
}

// Error formats output.
func (*ErrInvalidEntry) Error() string {
	return "invalid entry"
}
