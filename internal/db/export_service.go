package db

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gorm.io/gorm"

	"github.com/JRDK92/Clockbuster/internal/models"
)

// CSVHeader is the first line of every export
var CSVHeader = []string{"ID", "Activity", "Start Time", "End Time", "Duration (minutes)"}

// ExportCSV writes every session of storePath to outputPath ordered by start time and
// returns the number of sessions written. The store must already exist with its
// schema; it is never repaired. outputPath is overwritten
func ExportCSV(storePath, outputPath string) (int, error) {
	fail := func(err error) (int, error) {
		return 0, &ExportError{Path: storePath, Output: outputPath, Err: err}
	}

	same, err := SameStore(storePath, outputPath)
	if err != nil {
		return fail(err)
	}
	if same {
		return fail(ErrOutputIsStore)
	}

	var sessions []models.Session
	err = withExistingStore(storePath, func(conn *gorm.DB) error {
		return readSessions(conn, Ascending, &sessions)
	})
	if err != nil {
		return fail(err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fail(fmt.Errorf("failed to create output file: %w", err))
	}

	if err := WriteCSV(f, sessions); err != nil {
		f.Close()
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(fmt.Errorf("failed to close output file: %w", err))
	}

	return len(sessions), nil
}

// WriteCSV writes the header and one row per session, in the given order
func WriteCSV(w io.Writer, sessions []models.Session) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range sessions {
		row := []string{
			strconv.FormatInt(s.ID, 10),
			s.ActivityName,
			s.StartTime,
			s.EndTime,
			strconv.FormatFloat(s.DurationMinutes, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write session #%d: %w", s.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
