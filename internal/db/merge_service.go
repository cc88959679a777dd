package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/JRDK92/Clockbuster/internal/models"
)

// MergeInto copies every session of sourcePath that targetPath does not already hold,
// matched on activity name, start and end, and returns how many were inserted. The
// whole merge is one transaction: on any failure the target is left untouched
func MergeInto(sourcePath, targetPath string) (int, error) {
	fail := func(err error) (int, error) {
		return 0, &MergeError{Source: sourcePath, Target: targetPath, Err: err}
	}

	same, err := SameStore(sourcePath, targetPath)
	if err != nil {
		return fail(err)
	}
	if same {
		return fail(ErrSelfMerge)
	}

	// Read the entire source before the target is opened
	var records []models.Session
	err = withExistingStore(sourcePath, func(conn *gorm.DB) error {
		return readSessions(conn, Ascending, &records)
	})
	if err != nil {
		return fail(err)
	}

	if err := EnsureSchema(targetPath); err != nil {
		return fail(err)
	}

	merged := 0
	err = withStore(targetPath, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			for _, record := range records {
				exists, err := hasSession(tx, record.Key())
				if err != nil {
					return fmt.Errorf("check %s at %s: %w", record.ActivityName, record.StartTime, err)
				}
				if exists {
					continue
				}

				record.ID = 0
				if err := tx.Create(&record).Error; err != nil {
					return fmt.Errorf("insert %s at %s: %w", record.ActivityName, record.StartTime, err)
				}
				merged++
			}
			return nil
		})
	})
	if err != nil {
		return fail(err)
	}

	return merged, nil
}

// hasSession reports whether a session with exactly this key is stored
func hasSession(tx *gorm.DB, key models.Key) (bool, error) {
	var count int64
	err := tx.Model(&models.Session{}).
		Where("activity_name = ? AND start_time = ? AND end_time = ?", key.ActivityName, key.StartTime, key.EndTime).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MergeReport summarizes MergeAll
type MergeReport struct {
	Merged int
	Errors []error
}

// Err joins every per-source failure, or returns nil
func (r MergeReport) Err() error {
	return errors.Join(r.Errors...)
}

// MergeAll merges each source into target in turn. Every source is its own atomic
// merge, so one bad file does not undo the others
func MergeAll(sources []string, target string) MergeReport {
	var report MergeReport
	for _, source := range sources {
		merged, err := MergeInto(source, target)
		if err != nil {
			report.Errors = append(report.Errors, err)
			continue
		}
		report.Merged += merged
	}
	return report
}

// SameStore reports whether two paths name the same file
func SameStore(a, b string) (bool, error) {
	ra, err := resolvePath(a)
	if err != nil {
		return false, err
	}
	rb, err := resolvePath(b)
	if err != nil {
		return false, err
	}
	if ra == rb {
		return true, nil
	}

	ia, errA := os.Stat(ra)
	ib, errB := os.Stat(rb)
	if errA == nil && errB == nil {
		return os.SameFile(ia, ib), nil
	}
	return false, nil
}

// resolvePath makes path absolute and follows symlinks when they resolve
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
