package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JRDK92/Clockbuster/internal/watch"
)

// TimerModel represents the TUI model for a running clock-in
type TimerModel struct {
	width  int
	height int

	activity  string
	storePath string
	device    string
	startedAt time.Time
	now       func() time.Time

	// Timer state
	elapsedTime time.Duration

	// Animation state
	timerAnimation int

	// Store watcher feed, nil when watching is unavailable
	storeEvents <-chan watch.Event
	warning     string

	// UI state
	stopping    bool // s pressed: clock out and save
	confirmQuit bool // q pressed once: waiting for a second q to discard
	exiting     bool // leaving without saving
}

// timerTickMsg is sent every second to update the timer
type timerTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// storeEventMsg carries a change to the store file
type storeEventMsg watch.Event

// NewTimerModel creates a timer that started at startedAt
func NewTimerModel(activity, storePath, device string, startedAt time.Time) TimerModel {
	return TimerModel{
		activity:  activity,
		storePath: storePath,
		device:    device,
		startedAt: startedAt,
		now:       time.Now,
	}
}

// WithStoreEvents attaches a store watcher feed
func (m TimerModel) WithStoreEvents(events <-chan watch.Event) TimerModel {
	m.storeEvents = events
	return m
}

// Stopping reports whether the user asked to clock out and save
func (m TimerModel) Stopping() bool {
	return m.stopping
}

// Exiting reports whether the user left without saving
func (m TimerModel) Exiting() bool {
	return m.exiting
}

// Init initializes the timer model
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(
		timerTick(),
		animationTick(),
		waitForStoreEvent(m.storeEvents),
	)
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// waitForStoreEvent blocks on the watcher feed; a nil feed yields no command
func waitForStoreEvent(events <-chan watch.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg(ev)
	}
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsedTime = m.now().Sub(m.startedAt)
		if m.done() {
			return m, nil
		}
		return m, timerTick()

	case animationTickMsg:
		m.timerAnimation = (m.timerAnimation + 1) % 4
		if m.done() {
			return m, nil
		}
		return m, animationTick()

	case storeEventMsg:
		switch watch.Event(msg) {
		case watch.EventRemoved, watch.EventMoved:
			m.warning = "Database file was deleted or moved. A new one will be created when you clock out."
		case watch.EventCreated:
			m.warning = ""
		}
		return m, waitForStoreEvent(m.storeEvents)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.stopping = true
			return m, tea.Quit
		case "ctrl+c":
			m.exiting = true
			return m, tea.Quit
		case "q", "esc":
			if m.confirmQuit {
				m.exiting = true
				return m, tea.Quit
			}
			m.confirmQuit = true
			return m, nil
		default:
			m.confirmQuit = false
		}
	}

	return m, nil
}

func (m TimerModel) done() bool {
	return m.stopping || m.exiting
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if m.width < 90 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderTimerPanel(m.width, contentHeight),
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ",
		m.renderSessionPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		helpBar,
	)
}

// renderTimerPanel renders the left timer panel
func (m TimerModel) renderTimerPanel(width, height int) string {
	var components []string

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	animChar := animChars[m.timerAnimation]
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, headerStyle.Render(fmt.Sprintf("%s  CLOCKED IN  %s", animChar, animChar)))

	activityStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, activityStyle.Render(truncateText(m.activity, width-4)))

	var clock strings.Builder
	for i, line := range strings.Split(renderBigClock(m.elapsedTime), "\n") {
		if i > 0 {
			clock.WriteString("\n")
		}
		clock.WriteString(lipgloss.NewStyle().Align(lipgloss.Center).Width(width).Render(line))
	}
	components = append(components, clock.String())

	sessionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, sessionStyle.Render("Started at "+m.startedAt.Format("15:04:05")))

	if notice := m.notice(); notice != "" {
		warningStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		components = append(components, warningStyle.Render(notice))
	}

	panelStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return panelStyle.Render(strings.Join(components, "\n\n"))
}

// notice is the most urgent message for the user, if any
func (m TimerModel) notice() string {
	if m.confirmQuit {
		return "You haven't clocked out. Press q again to discard this session, s to save it."
	}
	return m.warning
}

// renderSessionPanel renders the right panel with store details
func (m TimerModel) renderSessionPanel(width, height int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1)
	b.WriteString(titleStyle.Render("CLOCKBUSTER"))
	b.WriteString("\n\n")

	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBorder)).
		Align(lipgloss.Center).
		Width(width - 8)
	b.WriteString(separatorStyle.Render(strings.Repeat("─", min(width-12, 40))))
	b.WriteString("\n\n")

	lineStyle := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(width - 8)
	value := func(v, color string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(v)
	}

	device := m.device
	deviceColor := ColorAccentBright
	if device == "" {
		device = "unnamed"
		deviceColor = ColorDisabledText
	}
	b.WriteString(lineStyle.Render("💻 Device: " + value(device, deviceColor)))
	b.WriteString("\n")

	storeColor := ColorSecondaryText
	if m.warning != "" {
		storeColor = ColorWarning
	}
	b.WriteString(lineStyle.Render("🗄️  Database: " + value(filepath.Base(m.storePath), storeColor)))
	b.WriteString("\n")
	b.WriteString(lineStyle.Render("📅 Date: " + value(m.startedAt.Format("Jan 02, 2006"), ColorSecondaryText)))

	return lipgloss.NewStyle().Height(height).Render(b.String())
}

// renderHelpBar renders the help bar at the bottom
func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("s clock out & save · q/esc discard (asks first) · ctrl+c force quit")
}

// bigDigits is the 5-row ASCII art for the clock face
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders the elapsed time as ASCII art
func renderBigClock(d time.Duration) string {
	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var lines [5]strings.Builder
	for _, char := range formatClock(d) {
		art, ok := bigDigits[char]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}

// formatClock renders MM:SS, or HH:MM:SS past the first hour
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func truncateText(s string, width int) string {
	runes := []rune(s)
	if width <= 3 || len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
