package models

import (
	"fmt"
	"time"
)

// TimeLayout is the on-disk timestamp format shared with every other copy of the store
const TimeLayout = "2006-01-02 15:04:05"

// Session represents one completed clock-in/clock-out cycle
type Session struct {
	ID              int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ActivityName    string  `gorm:"not null" json:"activity_name"`
	StartTime       string  `gorm:"not null" json:"start_time"`
	EndTime         string  `gorm:"not null" json:"end_time"`
	DurationMinutes float64 `gorm:"not null" json:"duration_minutes"`
}

// TableName pins the table name so gorm never pluralizes differently
func (Session) TableName() string {
	return "sessions"
}

// Key identifies the same real-world interval across stores. Duration is not part of it
type Key struct {
	ActivityName string
	StartTime    string
	EndTime      string
}

// Key returns the deduplication key of the session
func (s Session) Key() Key {
	return Key{ActivityName: s.ActivityName, StartTime: s.StartTime, EndTime: s.EndTime}
}

// Duration returns DurationMinutes as a time.Duration
func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationMinutes * float64(time.Minute))
}

// Start parses StartTime in the local time zone
func (s Session) Start() (time.Time, error) {
	return ParseTime(s.StartTime)
}

// End parses EndTime in the local time zone
func (s Session) End() (time.Time, error) {
	return ParseTime(s.EndTime)
}

// NewSession builds an unsaved session from two instants. Both are truncated to
// whole seconds, which is the precision the store keeps
func NewSession(activity string, start, end time.Time) Session {
	start = start.Truncate(time.Second)
	end = end.Truncate(time.Second)
	return Session{
		ActivityName:    activity,
		StartTime:       FormatTime(start),
		EndTime:         FormatTime(end),
		DurationMinutes: end.Sub(start).Minutes(),
	}
}

// FormatTime renders t in local time using TimeLayout
func FormatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

// ParseTime parses a TimeLayout timestamp as local time
func ParseTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}
