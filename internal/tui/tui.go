package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JRDK92/Clockbuster/internal/db"
	"github.com/JRDK92/Clockbuster/internal/models"
	"github.com/JRDK92/Clockbuster/internal/watch"
)

// RunClockIn runs the clock-in timer for activity and saves the session when the user
// clocks out. It returns nil, nil when the user left without saving
func RunClockIn(storePath, device, activity string) (*models.Session, error) {
	startedAt := time.Now()
	model := NewTimerModel(activity, storePath, device, startedAt)

	watcher, err := watch.New(storePath)
	if err != nil {
		// The timer works without it, the user just won't be warned early
		slog.Debug("store watcher unavailable", "path", storePath, "error", err)
	} else {
		defer watcher.Close()
		model = model.WithStoreEvents(watcher.Events())
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	timerModel := finalModel.(TimerModel)
	if !timerModel.Stopping() {
		return nil, nil
	}

	return SaveSession(storePath, activity, startedAt, time.Now())
}

// SaveSession repairs the store if the file vanished meanwhile, then inserts the session
func SaveSession(storePath, activity string, start, end time.Time) (*models.Session, error) {
	repair, err := db.RepairSchema(storePath)
	if err != nil {
		return nil, err
	}
	if repair != db.RepairNone {
		slog.Warn("database recreated before saving", "path", storePath, "repair", repair.String())
	}

	session := models.NewSession(activity, start, end)
	saved, err := db.Insert(storePath, session)
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return saved, nil
}

// RunListTUI shows the sessions of storePath in an interactive table
func RunListTUI(storePath string, order db.Order, sessions []models.Session) error {
	p := tea.NewProgram(NewListModel(storePath, order, sessions), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
