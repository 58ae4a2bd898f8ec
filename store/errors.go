package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation targets a nonexistent id.
var ErrNotFound = errors.New("record not found")

// ValidationError carries every rule violation found in one pass.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// StorageError wraps a failure of the underlying database engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IntegrityError signals a backup that cannot be trusted: wrong schema
// version, bad checksum or missing structure.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string { return e.Reason }

// EncodingError signals a failure to serialize or seal a backup payload.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string { return fmt.Sprintf("encoding error: %v", e.Err) }

func (e *EncodingError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
