package match

import (
	"time"

	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

const NoRound = -1

type Cell struct {
	Letter    protocol.Letter
	MatchType protocol.MatchType
}

// State is a snapshot of a match. Snapshots returned by the Reducer are never
// modified afterwards, every transition works on a clone.
type State struct {
	Player1    *protocol.Player
	Player2    *protocol.Player
	MaxGuesses int

	// FirstRound is the number of the round stored in the first grid row.
	FirstRound int

	// Guesses is a [rounds][wordLength] grid. A row stays nil until the
	// feedback for its round arrives.
	Guesses       [][]*Cell
	CurrentRound  int
	CurrentGuess  []rune
	OpponentGuess string
	MyTurn        bool
	Deadline      *time.Time
	GameOver      *protocol.GameOverPayload

	// Interactive is false once the connection is gone.
	Interactive bool
}

func newState(start *protocol.GameStartPayload, rounds int, wordLength int) *State {
	state := &State{
		Guesses:      make([][]*Cell, rounds),
		CurrentRound: NoRound,
		CurrentGuess: make([]rune, 0, wordLength),
		Interactive:  true,
	}
	for i := range state.Guesses {
		state.Guesses[i] = make([]*Cell, wordLength)
	}
	if start != nil {
		state.Player1 = start.Player1
		state.Player2 = start.Player2
		state.MaxGuesses = start.MaxGuesses
	}
	return state
}

func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Guesses = make([][]*Cell, len(s.Guesses))
	for i, row := range s.Guesses {
		clone.Guesses[i] = make([]*Cell, len(row))
		for j, cell := range row {
			if cell != nil {
				c := *cell
				clone.Guesses[i][j] = &c
			}
		}
	}

	clone.CurrentGuess = make([]rune, len(s.CurrentGuess), cap(s.CurrentGuess))
	copy(clone.CurrentGuess, s.CurrentGuess)

	if s.Deadline != nil {
		deadline := *s.Deadline
		clone.Deadline = &deadline
	}

	return &clone
}

func (s *State) Terminal() bool {
	return s.GameOver != nil
}

func (s *State) Started() bool {
	return s.CurrentRound != NoRound
}

// CurrentRow is the grid row of the current round, NoRound before the first one.
func (s *State) CurrentRow() int {
	if !s.Started() {
		return NoRound
	}
	return s.CurrentRound - s.FirstRound
}

func (s *State) WordLength() int {
	if len(s.Guesses) == 0 {
		return 0
	}
	return len(s.Guesses[0])
}

func (s *State) CurrentWord() string {
	return string(s.CurrentGuess)
}

// TimeRemaining is the time left until the deadline, never negative.
func (s *State) TimeRemaining(now time.Time) time.Duration {
	if s.Deadline == nil {
		return 0
	}
	remaining := s.Deadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Opponent returns the player that is not the given one.
func (s *State) Opponent(player *protocol.Player) *protocol.Player {
	switch {
	case s.Player1.Is(player):
		return s.Player2
	case s.Player2.Is(player):
		return s.Player1
	}
	return nil
}

func (s *State) HasPlayer(player *protocol.Player) bool {
	return s.Player1.Is(player) || s.Player2.Is(player)
}

// RowFilled reports whether the row has received its feedback.
func (s *State) RowFilled(row int) bool {
	if row < 0 || row >= len(s.Guesses) {
		return false
	}
	for _, cell := range s.Guesses[row] {
		if cell == nil {
			return false
		}
	}
	return true
}
