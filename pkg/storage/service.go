package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

//go:generate mockgen -source=service.go -destination=mock/service.go

type Service interface {
	Initialize() error
	PlayerName() string
	SetPlayerName(name string) error
	SaveMatchResult(result MatchResult) error
	MatchHistory() ([]MatchResult, error)
}

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

type MatchResult struct {
	ID         uuid.UUID       `json:"id"`
	Opponent   protocol.Player `json:"opponent"`
	Outcome    Outcome         `json:"outcome"`
	Answer     string          `json:"answer"`
	Rounds     int             `json:"rounds"`
	FinishedAt time.Time       `json:"finishedAt"`
}
