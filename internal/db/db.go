package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sessionsTable = "sessions"

// createSessionsTable is kept byte-compatible with stores created by earlier releases
const createSessionsTable = `CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	activity_name TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	duration_minutes REAL NOT NULL
)`

// Repair describes what RepairSchema had to recreate
type Repair int

const (
	RepairNone Repair = iota
	RepairCreatedFile
	RepairCreatedTable
)

func (r Repair) String() string {
	switch r {
	case RepairCreatedFile:
		return "database file was missing and has been created"
	case RepairCreatedTable:
		return "sessions table was missing and has been recreated"
	default:
		return "none"
	}
}

// EnsureSchema makes sure path holds a store with the sessions table, creating the
// file and table when missing. Existing data is never touched
func EnsureSchema(path string) error {
	_, err := RepairSchema(path)
	return err
}

// RepairSchema is EnsureSchema, reporting what had to be recreated
func RepairSchema(path string) (Repair, error) {
	repair := RepairNone

	exists, err := fileExists(path)
	if err != nil {
		return repair, &StoreError{Op: "stat", Path: path, Err: err}
	}
	if !exists {
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return repair, &StoreError{Op: "create directory for", Path: path, Err: err}
		}
		repair = RepairCreatedFile
	}

	err = withStore(path, func(conn *gorm.DB) error {
		ok, err := hasSessionsTable(conn)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if repair == RepairNone {
			repair = RepairCreatedTable
		}
		return conn.Exec(createSessionsTable).Error
	})
	if err != nil {
		return repair, &StoreError{Op: "ensure schema", Path: path, Err: err}
	}

	return repair, nil
}

// HasSchema reports whether an existing file carries the sessions table. It never
// creates the file or the table
func HasSchema(path string) (bool, error) {
	exists, err := fileExists(path)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrStoreNotFound
	}

	var ok bool
	err = withStore(path, func(conn *gorm.DB) error {
		ok, err = hasSessionsTable(conn)
		return err
	})
	return ok, err
}

// withExistingStore opens a store that must already exist with its schema. Used for
// merge and export sources, which are never repaired
func withExistingStore(path string, fn func(conn *gorm.DB) error) error {
	exists, err := fileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return ErrStoreNotFound
	}

	return withStore(path, func(conn *gorm.DB) error {
		ok, err := hasSessionsTable(conn)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMissingSchema
		}
		return fn(conn)
	})
}

// withStore opens a short-lived connection, runs fn and always closes the connection
func withStore(path string, fn func(conn *gorm.DB) error) (err error) {
	conn, err := open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeConn(conn); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(conn)
}

// open connects to the SQLite file at path
func open(path string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	// One writer, and nothing survives the operation anyway
	sqlDB.SetMaxOpenConns(1)

	return conn, nil
}

// closeConn closes the connection pool behind conn
func closeConn(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func hasSessionsTable(conn *gorm.DB) (bool, error) {
	var count int64
	err := conn.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", sessionsTable).
		Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
