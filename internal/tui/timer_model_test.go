package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JRDK92/Clockbuster/internal/watch"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m TimerModel, msg tea.Msg) (TimerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	tm, ok := next.(TimerModel)
	require.True(t, ok)
	return tm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newTestTimer() TimerModel {
	return NewTimerModel("WRITING", "/tmp/clockbuster_desk.db", "desk", time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local))
}

func TestTimerStopSaves(t *testing.T) {
	m, cmd := update(t, newTestTimer(), keyRunes("s"))
	assert.True(t, m.Stopping())
	assert.False(t, m.Exiting())
	assert.True(t, isQuit(cmd))
}

func TestTimerQuitAsksFirst(t *testing.T) {
	m, cmd := update(t, newTestTimer(), keyRunes("q"))
	assert.False(t, m.Exiting())
	assert.Nil(t, cmd)
	assert.Contains(t, m.notice(), "Press q again")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Exiting())
	assert.False(t, m.Stopping())
	assert.True(t, isQuit(cmd))
}

func TestTimerOtherKeyCancelsQuit(t *testing.T) {
	m, _ := update(t, newTestTimer(), keyRunes("q"))
	m, _ = update(t, m, keyRunes("x"))
	assert.Empty(t, m.notice())

	m, cmd := update(t, m, keyRunes("q"))
	assert.False(t, m.Exiting())
	assert.Nil(t, cmd)
}

func TestTimerCtrlCDiscards(t *testing.T) {
	m, cmd := update(t, newTestTimer(), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.Exiting())
	assert.False(t, m.Stopping())
	assert.True(t, isQuit(cmd))
}

func TestTimerTickUsesClock(t *testing.T) {
	m := newTestTimer()
	m.now = func() time.Time { return m.startedAt.Add(83 * time.Second) }

	m, cmd := update(t, m, timerTickMsg{})
	assert.Equal(t, 83*time.Second, m.elapsedTime)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, keyRunes("s"))
	_, cmd = update(t, m, timerTickMsg{})
	assert.Nil(t, cmd, "ticking stops once the timer is done")
}

func TestTimerStoreEvents(t *testing.T) {
	events := make(chan watch.Event, 1)
	m := newTestTimer().WithStoreEvents(events)

	m, cmd := update(t, m, storeEventMsg(watch.EventRemoved))
	assert.Contains(t, m.warning, "deleted or moved")
	require.NotNil(t, cmd)

	events <- watch.EventCreated
	msg := cmd()
	assert.Equal(t, storeEventMsg(watch.EventCreated), msg)

	m, _ = update(t, m, msg)
	assert.Empty(t, m.warning)
}

func TestWaitForStoreEventWithoutWatcher(t *testing.T) {
	assert.Nil(t, waitForStoreEvent(nil))
}

func TestTimerView(t *testing.T) {
	m, _ := update(t, newTestTimer(), tea.WindowSizeMsg{Width: 120, Height: 30})
	view := m.View()
	assert.Contains(t, view, "WRITING")
	assert.Contains(t, view, "clockbuster_desk.db")
	assert.Contains(t, view, "desk")

	narrow, _ := update(t, newTestTimer(), tea.WindowSizeMsg{Width: 60, Height: 30})
	assert.Contains(t, narrow.View(), "WRITING")

	assert.Equal(t, "Loading...", newTestTimer().View())
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Minute + 1*time.Second, "01:01:01"},
		{25*time.Hour + 30*time.Minute, "25:30:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatClock(tt.d), "formatClock(%s)", tt.d)
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "abcd...", truncateText("abcdefghij", 7))
	assert.Equal(t, "ÜÜÜÜ...", truncateText("ÜÜÜÜÜÜÜÜ", 7))
}
