package jsonfile

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreLocked is returned when another writer holds the identity's store.
	ErrStoreLocked = errors.New("jsonfile: record store is locked by another writer")
	// ErrCorrupt indicates a state file that does not belong to the requested identity.
	ErrCorrupt = errors.New("jsonfile: state file is corrupt")
)

// StoreError wraps file store failures with the operation and file involved.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("jsonfile: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
