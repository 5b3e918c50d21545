package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/internal/view/states"
	"github.com/six78/wordle-duel-cli/pkg/game"
)

var (
	foregroundShadeStyle = lipgloss.NewStyle().Foreground(config.ForegroundShadeColor)
)

func (m model) renderAppState() string {
	switch m.state {
	case states.Initializing:
		return m.spinner.View() + " Starting..."
	case states.InputPlayerName:
		return m.renderPlayerNameInput()
	case states.Playing:
		return m.renderGame()
	}

	return "unknown app state"
}

func (m model) renderPlayerNameInput() string {
	return lipgloss.JoinVertical(
		lipgloss.Top,
		"Enter your name to find an opponent:",
		m.input.View(),
		m.errorView.View(),
	)
}

func (m model) renderGame() string {
	return lipgloss.JoinVertical(lipgloss.Top,
		m.connectionView.View(),
		"",
		m.renderMatch(),
		"",
		m.shortcutsView.View(),
		m.errorView.View(),
	)
}

func (m model) renderMatch() string {
	switch m.gameStatus {
	case game.StatusIdle:
		return foregroundShadeStyle.Render("Session ended, press Ctrl+C to quit")
	case game.StatusConnecting:
		return m.spinner.View() + " Connecting to server..."
	case game.StatusMatching:
		return m.spinner.View() + " Finding opponent..."
	}

	if m.gameState == nil {
		return m.spinner.View() + " Waiting for the match to start..."
	}

	view := lipgloss.JoinVertical(lipgloss.Top,
		m.playersView.View(),
		"",
		m.gridView.View(),
		"",
		m.toastView.View(),
	)

	if m.gameStatus == game.StatusFinished {
		view = lipgloss.JoinVertical(lipgloss.Top, view, "", "Play again? [Y]/[N]")
	}

	return view
}

func renderLogPath() string {
	path := strings.Replace(config.LogFilePath, " ", "%20", -1)
	return fmt.Sprintf("Log: file:///%s", path)
}
