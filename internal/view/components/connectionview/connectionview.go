package connectionview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/six78/wordle-duel-cli/internal/transport"
	"github.com/six78/wordle-duel-cli/internal/view/messages"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00E676"))
	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5722"))
)

type Model struct {
	status transport.ConnectionStatus
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case messages.ConnectionStatus:
		m.status = msg.Status
	}
	return m
}

func (m Model) View() string {
	marker := "●"
	text := " Offline"
	if m.status.IsOnline {
		marker = okStyle.Render(marker)
		text = " Online"
	} else {
		marker = dangerStyle.Render(marker)
	}

	if m.status.Server != "" {
		text += ": " + m.status.Server
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, marker, text)
}
