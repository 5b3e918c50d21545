package toastview

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/six78/wordle-duel-cli/internal/view/messages"
	"github.com/six78/wordle-duel-cli/pkg/match"
)

const (
	DefaultDuration = 3 * time.Second
	maxToasts       = 3
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00E676")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEA00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5722"))
)

type toast struct {
	id           int
	notification match.Notification
}

type Model struct {
	toasts   []toast
	nextID   int
	duration time.Duration
}

func New(duration time.Duration) Model {
	return Model{
		duration: duration,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case messages.GameUpdateMessage:
		for _, notification := range msg.Update.Notifications {
			m.nextID++
			m.toasts = append(m.toasts, toast{id: m.nextID, notification: notification})
			cmds = append(cmds, expire(m.nextID, m.duration))
		}
		if len(m.toasts) > maxToasts {
			m.toasts = m.toasts[len(m.toasts)-maxToasts:]
		}
	case messages.ToastExpired:
		for i, t := range m.toasts {
			if t.id == msg.ID {
				m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
				break
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		lines = append(lines, render(t.notification))
	}
	return strings.Join(lines, "\n")
}

func (m Model) Len() int {
	return len(m.toasts)
}

func render(notification match.Notification) string {
	switch notification.Level {
	case match.LevelSuccess:
		return successStyle.Render("✓ " + notification.Message)
	case match.LevelWarning:
		return warningStyle.Render("! " + notification.Message)
	case match.LevelError:
		return errorStyle.Render("✗ " + notification.Message)
	default:
		return infoStyle.Render("› " + notification.Message)
	}
}

func expire(id int, duration time.Duration) tea.Cmd {
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return messages.ToastExpired{ID: id}
	})
}
