package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/six78/wordle-duel-cli/internal/transport"
	"github.com/six78/wordle-duel-cli/internal/view/messages"
	"github.com/six78/wordle-duel-cli/internal/view/states"
	"github.com/six78/wordle-duel-cli/pkg/game"
)

const tickInterval = time.Second

func InitializeApp(game *game.Game, transport transport.Service) tea.Cmd {
	return func() tea.Msg {
		err := transport.Initialize()
		if err != nil {
			return messages.FatalErrorMessage{
				Err: errors.Wrap(err, "failed to initialize transport"),
			}
		}

		err = game.Initialize()
		if err != nil {
			return messages.FatalErrorMessage{
				Err: errors.Wrap(err, "failed to initialize game"),
			}
		}

		return messages.AppStateFinishedMessage{State: states.Initializing}
	}
}

// Connect saves the player name and joins the matchmaking queue.
func Connect(game *game.Game, playerName string) tea.Cmd {
	return func() tea.Msg {
		if playerName != "" && playerName != game.Nickname() {
			err := game.Rename(playerName)
			if err != nil {
				return messages.NewErrorMessage(err)
			}
		}

		err := game.Connect()
		if err != nil {
			return messages.NewErrorMessage(err)
		}

		return messages.AppStateFinishedMessage{State: states.InputPlayerName}
	}
}

func SubmitGuess(game *game.Game) tea.Cmd {
	return func() tea.Msg {
		err := game.SubmitGuess()
		return messages.NewErrorMessage(err)
	}
}

func PlayAgain(game *game.Game, confirm bool) tea.Cmd {
	return func() tea.Msg {
		err := game.PlayAgain(confirm)
		return messages.NewErrorMessage(err)
	}
}

func QuitApp(game *game.Game) tea.Cmd {
	return func() tea.Msg {
		if game != nil {
			game.Stop()
		}
		return tea.Quit()
	}
}

func Tick(game *game.Game) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return messages.Tick{Remaining: game.TimeRemaining()}
	})
}
