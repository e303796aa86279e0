package kmlog

import (
	"errors"
	"fmt"
)

type (
	// ValidationError reports a missing or unparseable user-supplied field.
	// No mutation takes place when it is returned
	ValidationError struct {
		Err   error
		Field string
		Value string
	}

	// IndexError reports a position outside the bounds of the log
	IndexError struct {
		Index int
		Len   int
	}
)

const (
	FieldDate      = "date"
	FieldKilometer = "kilometer"
)

var (
	// ErrValidation matches any *ValidationError through errors.Is
	ErrValidation = errors.New("invalid event")

	// ErrIndex matches any *IndexError through errors.Is
	ErrIndex = errors.New("event index out of range")

	// ErrNotEditing is returned by CommitEdit outside of edit mode
	ErrNotEditing = errors.New("not editing an event")

	// ErrNotFound is returned by a Store when the key holds no value
	ErrNotFound = errors.New("key not found")

	// ErrUnknownBackend is returned by NewStore for an unrecognized backend
	ErrUnknownBackend = errors.New("unknown store backend")
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *IndexError) Error() string {
	return fmt.Sprintf(
		"event index %d out of range: log holds %d events", e.Index, e.Len,
	)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

func checkIndex(index, length int) error {
	if index < 0 || index >= length {
		return &IndexError{Index: index, Len: length}
	}
	return nil
}
