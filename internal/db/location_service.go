package db

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// RelocateMode decides what happens when the new store location already has a file
type RelocateMode int

const (
	// RelocateAbort refuses to touch an existing file
	RelocateAbort RelocateMode = iota
	// RelocateKeep keeps the existing file and merges the current store into it
	RelocateKeep
	// RelocateReplace overwrites the existing file with the current store
	RelocateReplace
)

// RelocateResult describes what Relocate did
type RelocateResult struct {
	Path   string
	Merged int  // sessions merged into an existing file (RelocateKeep)
	Copied bool // the current store was copied to the new path
}

// Backup copies the store at storePath to destPath, overwriting destPath, and returns
// the number of bytes written. The store is repaired first, so a backup always holds
// a valid schema
func Backup(storePath, destPath string) (int64, error) {
	if err := EnsureSchema(storePath); err != nil {
		return 0, err
	}

	same, err := SameStore(storePath, destPath)
	if err != nil {
		return 0, &StoreError{Op: "back up", Path: storePath, Err: err}
	}
	if same {
		return 0, &StoreError{Op: "back up", Path: storePath, Err: ErrSameLocation}
	}

	n, err := copyFile(storePath, destPath)
	if err != nil {
		return 0, &StoreError{Op: "back up", Path: storePath, Err: err}
	}
	return n, nil
}

// Relocate moves the active store from currentPath to newPath according to mode and
// makes sure newPath ends up a valid store. currentPath is left in place
func Relocate(currentPath, newPath string, mode RelocateMode) (RelocateResult, error) {
	result := RelocateResult{Path: newPath}

	same, err := SameStore(currentPath, newPath)
	if err != nil {
		return result, &StoreError{Op: "relocate", Path: newPath, Err: err}
	}
	if same {
		return result, &StoreError{Op: "relocate", Path: newPath, Err: ErrSameLocation}
	}

	targetExists, err := fileExists(newPath)
	if err != nil {
		return result, &StoreError{Op: "relocate", Path: newPath, Err: err}
	}
	currentExists, err := fileExists(currentPath)
	if err != nil {
		return result, &StoreError{Op: "relocate", Path: currentPath, Err: err}
	}

	switch {
	case targetExists && mode == RelocateAbort:
		return result, &StoreError{Op: "relocate", Path: newPath, Err: ErrDestinationExists}
	case targetExists && mode == RelocateKeep && currentExists:
		merged, err := MergeInto(currentPath, newPath)
		if err != nil {
			return result, err
		}
		result.Merged = merged
	case currentExists && (!targetExists || mode == RelocateReplace):
		if err := os.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
			return result, &StoreError{Op: "relocate", Path: newPath, Err: err}
		}
		if _, err := copyFile(currentPath, newPath); err != nil {
			return result, &StoreError{Op: "relocate", Path: newPath, Err: err}
		}
		result.Copied = true
	}

	if err := EnsureSchema(newPath); err != nil {
		return result, err
	}
	return result, nil
}

// RenameStore moves the store file to newPath. It refuses to replace an existing file
func RenameStore(currentPath, newPath string) error {
	exists, err := fileExists(newPath)
	if err != nil {
		return &StoreError{Op: "rename", Path: currentPath, Err: err}
	}
	if exists {
		return &StoreError{Op: "rename", Path: currentPath, Err: ErrDestinationExists}
	}

	if err := os.Rename(currentPath, newPath); err != nil {
		return &StoreError{Op: "rename", Path: currentPath, Err: err}
	}
	return nil
}

// copyFile copies src to dst through a temp file next to dst, so dst is either the old
// file or the complete copy
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	tmpPath := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.NewString()+".tmp")
	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}

	n, err := io.Copy(out, in)
	if err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to copy %s: %w", src, err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to move copy into place: %w", err)
	}
	return n, nil
}
