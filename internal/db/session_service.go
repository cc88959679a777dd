package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/JRDK92/Clockbuster/internal/models"
)

// Order selects the start_time direction of ListSessions
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// ParseOrder accepts "asc"/"ascending" and "desc"/"descending"
func ParseOrder(value string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("invalid order %q: use asc or desc", value)
	}
}

// orderClause sorts by start_time, breaking ties by id in the same direction
func (o Order) orderClause() string {
	if o == Descending {
		return "start_time DESC, id DESC"
	}
	return "start_time ASC, id ASC"
}

// InsertSession saves one completed session to the store at path and returns it with
// its assigned id. A missing file or table is recreated first
func InsertSession(path, activity string, start, end time.Time, durationMinutes float64) (*models.Session, error) {
	return Insert(path, models.Session{
		ActivityName:    activity,
		StartTime:       models.FormatTime(start),
		EndTime:         models.FormatTime(end),
		DurationMinutes: durationMinutes,
	})
}

// Insert saves a prebuilt session. Any ID on the argument is ignored
func Insert(path string, session models.Session) (*models.Session, error) {
	if strings.TrimSpace(session.ActivityName) == "" {
		return nil, &StoreError{Op: "insert into", Path: path, Err: ErrEmptyActivity}
	}

	if err := EnsureSchema(path); err != nil {
		return nil, err
	}

	session.ID = 0
	err := withStore(path, func(conn *gorm.DB) error {
		return conn.Create(&session).Error
	})
	if err != nil {
		return nil, &StoreError{Op: "insert into", Path: path, Err: err}
	}

	return &session, nil
}

// ListSessions returns every session in the store ordered by start_time. A missing
// file or table is recreated first, which yields an empty list
func ListSessions(path string, order Order) ([]models.Session, error) {
	if err := EnsureSchema(path); err != nil {
		return nil, err
	}

	var sessions []models.Session
	err := withStore(path, func(conn *gorm.DB) error {
		return readSessions(conn, order, &sessions)
	})
	if err != nil {
		return nil, &StoreError{Op: "list sessions in", Path: path, Err: err}
	}

	return sessions, nil
}

func readSessions(conn *gorm.DB, order Order, dest *[]models.Session) error {
	return conn.Order(order.orderClause()).Find(dest).Error
}
