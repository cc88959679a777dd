package db

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSchema means the file has no sessions table and is not a Clockbuster store
	ErrMissingSchema = errors.New("database does not contain a 'sessions' table")
	// ErrStoreNotFound means a store that is only read from does not exist
	ErrStoreNotFound = errors.New("database file not found")
	// ErrSelfMerge means source and target resolve to the same file
	ErrSelfMerge = errors.New("cannot merge a database with itself")
	// ErrEmptyActivity means the activity name is blank after trimming
	ErrEmptyActivity = errors.New("activity name is empty")
	// ErrSameLocation means a relocation targets the store already in use
	ErrSameLocation = errors.New("already using this database location")
	// ErrDestinationExists means a move or copy would clobber an existing file
	ErrDestinationExists = errors.New("destination file already exists")
	// ErrOutputIsStore means an export would overwrite the store it reads
	ErrOutputIsStore = errors.New("output file is the database being exported")
)

// StoreError reports a failure while ensuring, writing or reading the active store.
// Data already on disk is never lost because of it
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// MergeError reports a failed merge. The target is left exactly as it was
type MergeError struct {
	Source string
	Target string
	Err    error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %s into %s: %v", e.Source, e.Target, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// ExportError reports a failed CSV export. The output file may be partially written
type ExportError struct {
	Path   string
	Output string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s to %s: %v", e.Path, e.Output, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
