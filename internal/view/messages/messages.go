package messages

import (
	"time"

	"github.com/six78/wordle-duel-cli/internal/transport"
	"github.com/six78/wordle-duel-cli/internal/view/states"
	"github.com/six78/wordle-duel-cli/pkg/game"
)

type FatalErrorMessage struct {
	Err error
}

type AppStateFinishedMessage struct {
	State states.AppState
}

type AppStateMessage struct {
	State states.AppState
}

type GameUpdateMessage struct {
	Update game.Update
}

type ConnectionStatus struct {
	Status transport.ConnectionStatus
}

type ErrorMessage struct {
	Err error
}

func NewErrorMessage(err error) ErrorMessage {
	return ErrorMessage{Err: err}
}

// Tick refreshes the round countdown.
type Tick struct {
	Remaining time.Duration
}

type ToastExpired struct {
	ID int
}
