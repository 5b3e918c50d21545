package playersview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/internal/view/messages"
	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

const textColor = lipgloss.Color("#FAFAFA")

var (
	playerNameStyle = lipgloss.NewStyle().Foreground(textColor)
	myNameStyle     = playerNameStyle.Copy().Bold(true).Foreground(config.UserColor)
	shadeStyle      = lipgloss.NewStyle().Foreground(config.ForegroundShadeColor)
	urgentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5722"))
)

const urgentTime = 5 * time.Second

type Model struct {
	player    *protocol.Player
	state     *match.State
	remaining time.Duration
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case messages.GameUpdateMessage:
		m.player = msg.Update.Player
		m.state = msg.Update.State
		if m.state == nil || m.state.Deadline == nil {
			m.remaining = 0
		}
	case messages.Tick:
		m.remaining = msg.Remaining
	}
	return m
}

func (m Model) View() string {
	if m.state == nil {
		return ""
	}

	me := myNameStyle.Render(m.player.String() + " (you)")
	opponent := playerNameStyle.Render(m.state.Opponent(m.player).String())
	players := me + shadeStyle.Render("  vs  ") + opponent

	return lipgloss.JoinVertical(lipgloss.Left, players, m.renderTurn())
}

func (m Model) renderTurn() string {
	switch {
	case m.state.Terminal():
		return shadeStyle.Render("Match is over")
	case !m.state.Interactive:
		return shadeStyle.Render("Disconnected")
	case !m.state.Started():
		return shadeStyle.Render("Waiting for the first round...")
	}

	turn := "Opponent's turn"
	if m.state.MyTurn {
		turn = "Your turn"
	}
	turn = fmt.Sprintf("Round %d · %s", m.state.CurrentRound, turn)

	if m.state.Deadline == nil {
		return shadeStyle.Render(turn)
	}

	return shadeStyle.Render(turn+" · ") + renderRemaining(m.remaining)
}

func renderRemaining(remaining time.Duration) string {
	text := fmt.Sprintf("%ds left", int(remaining.Round(time.Second).Seconds()))
	if remaining <= urgentTime {
		return urgentStyle.Render(text)
	}
	return shadeStyle.Render(text)
}
