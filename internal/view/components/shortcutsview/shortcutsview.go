package shortcutsview

import (
	"fmt"

	bubblekey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/six78/wordle-duel-cli/internal/view/commands"
	"github.com/six78/wordle-duel-cli/internal/view/messages"
	"github.com/six78/wordle-duel-cli/pkg/game"
)

const bigSeparator = "  "

var (
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type Model struct {
	status game.Status
	myTurn bool
}

func New() Model {
	return Model{
		status: game.StatusIdle,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case messages.GameUpdateMessage:
		m.status = msg.Update.Status
		m.myTurn = msg.Update.State != nil && msg.Update.State.MyTurn
	}
	return m
}

func (m Model) View() string {
	keys := commands.DefaultKeyMap

	var row string

	switch {
	case m.status == game.StatusPlaying && m.myTurn:
		row = text("Type your guess") + bigSeparator +
			keyHelp(keys.SubmitGuess) + bigSeparator +
			keyHelp(keys.DeleteLetter) + bigSeparator
	case m.status == game.StatusFinished:
		row = keyHelp(keys.PlayAgain) + bigSeparator +
			keyHelp(keys.Decline) + bigSeparator
	}

	return row + keyHelp(keys.Quit)
}

func key(key bubblekey.Binding) string {
	s := fmt.Sprintf("[%s]", key.Help().Key)
	return keyStyle.Render(s)
}

func text(text string) string {
	return textStyle.Render(text)
}

func keyHelp(k bubblekey.Binding) string {
	return key(k) + " " + text(k.Help().Desc)
}
