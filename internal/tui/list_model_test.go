package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JRDK92/Clockbuster/internal/db"
	"github.com/JRDK92/Clockbuster/internal/models"
)

func testSessions() []models.Session {
	return []models.Session{
		{ID: 2, ActivityName: "READING", StartTime: "2024-01-01 11:00:00", EndTime: "2024-01-01 11:45:00", DurationMinutes: 45},
		{ID: 1, ActivityName: "WRITING", StartTime: "2024-01-01 09:00:00", EndTime: "2024-01-01 10:15:00", DurationMinutes: 75},
	}
}

func TestSessionRows(t *testing.T) {
	rows := sessionRows(testSessions())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2", "READING", "2024-01-01 11:00:00", "2024-01-01 11:45:00", "45.00"}, []string(rows[0]))
}

func TestListModelTotals(t *testing.T) {
	m := NewListModel("/tmp/a.db", db.Descending, testSessions())
	totals := m.renderTotals()
	assert.Contains(t, totals, "2 sessions")
	assert.Contains(t, totals, "2.0h tracked")
	assert.Contains(t, totals, "newest first")
}

func TestListModelQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := NewListModel("/tmp/a.db", db.Descending, nil).Update(key)
		assert.True(t, isQuit(cmd), "key %s", key)
	}
}

func TestListModelFlipOrderReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockbuster.db")
	for _, s := range testSessions() {
		_, err := db.Insert(path, s)
		require.NoError(t, err)
	}

	m := NewListModel(path, db.Descending, nil)
	next, cmd := m.Update(keyRunes("o"))
	m = next.(ListModel)
	assert.Equal(t, db.Ascending, m.order)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(ListModel)
	require.NoError(t, m.err)
	require.Len(t, m.sessions, 2)
	assert.Equal(t, "WRITING", m.sessions[0].ActivityName)
	assert.Equal(t, "READING", m.sessions[1].ActivityName)
}

func TestListModelShowsLoadError(t *testing.T) {
	m := NewListModel("/tmp/a.db", db.Ascending, testSessions())
	next, _ := m.Update(sessionsLoadedMsg{err: assert.AnError})
	m = next.(ListModel)

	assert.Contains(t, m.renderTotals(), assert.AnError.Error())
	assert.Len(t, m.sessions, 2, "previous rows are kept")
}

func TestListModelView(t *testing.T) {
	m := NewListModel("/tmp/a.db", db.Descending, testSessions())
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	view := next.(ListModel).View()
	assert.Contains(t, view, "WRITING")
	assert.Contains(t, view, "Duration (min)")
}
