package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JRDK92/Clockbuster/internal/db"
	"github.com/JRDK92/Clockbuster/internal/models"
)

// ListModel represents the TUI model for browsing a store's sessions
type ListModel struct {
	width  int
	height int

	storePath string
	order     db.Order
	sessions  []models.Session
	err       error

	table table.Model
}

// sessionsLoadedMsg is sent when a (re)load of the store finished
type sessionsLoadedMsg struct {
	sessions []models.Session
	err      error
}

var sessionColumns = []table.Column{
	{Title: "ID", Width: 6},
	{Title: "Activity", Width: 28},
	{Title: "Start Time", Width: 19},
	{Title: "End Time", Width: 19},
	{Title: "Duration (min)", Width: 14},
}

// NewListModel creates a viewer over already loaded sessions
func NewListModel(storePath string, order db.Order, sessions []models.Session) ListModel {
	t := table.New(
		table.WithColumns(sessionColumns),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain)).
		Bold(false)
	t.SetStyles(styles)

	m := ListModel{
		storePath: storePath,
		order:     order,
		table:     t,
	}
	return m.withSessions(sessions)
}

func (m ListModel) withSessions(sessions []models.Session) ListModel {
	m.sessions = sessions
	m.table.SetRows(sessionRows(sessions))
	return m
}

// sessionRows converts sessions to table rows, duration with two decimals
func sessionRows(sessions []models.Session) []table.Row {
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, table.Row{
			strconv.FormatInt(s.ID, 10),
			s.ActivityName,
			s.StartTime,
			s.EndTime,
			fmt.Sprintf("%.2f", s.DurationMinutes),
		})
	}
	return rows
}

// loadSessions re-reads the store in the given order
func loadSessions(path string, order db.Order) tea.Cmd {
	return func() tea.Msg {
		sessions, err := db.ListSessions(path, order)
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// header, totals, help and borders
		m.table.SetHeight(max(m.height-8, 3))
		m.table.SetWidth(max(m.width-2, 20))
		return m, nil

	case sessionsLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m = m.withSessions(msg.sessions)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			return m, loadSessions(m.storePath, m.order)
		case "o":
			if m.order == db.Ascending {
				m.order = db.Descending
			} else {
				m.order = db.Ascending
			}
			return m, loadSessions(m.storePath, m.order)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the TUI
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	title := titleStyle.Render("CLOCKBUSTER") + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(m.storePath)

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		tableStyle.Render(m.table.View()),
		m.renderTotals(),
		m.renderHelpBar(),
	)
}

// renderTotals renders the session count and total tracked time, or the last error
func (m ListModel) renderTotals() string {
	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Render("Error loading data: " + m.err.Error())
	}

	var minutes float64
	for _, s := range m.sessions {
		minutes += s.DurationMinutes
	}
	text := fmt.Sprintf("%d sessions · %.1fh tracked · newest %s", len(m.sessions), minutes/60, orderLabel(m.order))
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(text)
}

func orderLabel(o db.Order) string {
	if o == db.Descending {
		return "first"
	}
	return "last"
}

// renderHelpBar renders the help bar at the bottom
func (m ListModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("↑/↓ navigate · o flip order · r refresh · esc/q quit")
}
