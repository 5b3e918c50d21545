package view

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/internal/view/commands"
	"github.com/six78/wordle-duel-cli/internal/view/messages"
	"github.com/six78/wordle-duel-cli/pkg/game"
)

// Any command here must:
// 	1. Get model as argument
// 	2. Return tea.Cmd

func processPlayerNameInput(m *model, playerName string) tea.Cmd {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return func() tea.Msg {
			return messages.NewErrorMessage(errors.New("empty user name"))
		}
	}
	return commands.Connect(m.game, playerName)
}

func processGameKey(m *model, msg tea.KeyMsg) tea.Cmd {
	switch m.gameStatus {
	case game.StatusPlaying:
		return processGuessKey(m, msg)
	case game.StatusFinished:
		switch {
		case key.Matches(msg, commands.DefaultKeyMap.PlayAgain):
			return commands.PlayAgain(m.game, true)
		case key.Matches(msg, commands.DefaultKeyMap.Decline):
			return commands.PlayAgain(m.game, false)
		}
	}
	return nil
}

// processGuessKey edits the word being typed. The game is called right away
// so that fast typing never works on a stale word.
func processGuessKey(m *model, msg tea.KeyMsg) tea.Cmd {
	state := m.game.CurrentState()
	if state == nil || !state.MyTurn || state.Terminal() {
		return nil
	}

	word := []rune(state.CurrentWord())

	switch {
	case key.Matches(msg, commands.DefaultKeyMap.SubmitGuess):
		return commands.SubmitGuess(m.game)
	case key.Matches(msg, commands.DefaultKeyMap.DeleteLetter):
		if len(word) == 0 {
			return nil
		}
		word = word[:len(word)-1]
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && unicode.IsLetter(msg.Runes[0]):
		if len(word) >= state.WordLength() {
			return nil
		}
		word = append(word, unicode.ToUpper(msg.Runes[0]))
	default:
		return nil
	}

	err := m.game.Type(string(word))
	if err != nil {
		config.Logger.Debug("failed to type", zap.Error(err))
		return func() tea.Msg {
			return messages.NewErrorMessage(err)
		}
	}

	return nil
}
