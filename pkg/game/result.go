package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
	"github.com/six78/wordle-duel-cli/pkg/storage"
)

// finishMatch must be called with the mutex held, once the state is terminal.
func (g *Game) finishMatch() {
	if g.status != StatusPlaying {
		return
	}

	g.status = StatusFinished
	g.cancelTyping()

	if !g.HasStorage() {
		return
	}

	result := matchResult(g.state, g.player)
	result.ID = uuid.New()
	result.FinishedAt = g.clock.Now()

	err := g.storage.SaveMatchResult(result)
	if err != nil {
		g.logger.Error("failed to save match result", zap.Error(err))
		return
	}

	g.logger.Info("match result saved",
		zap.Stringer("id", result.ID),
		zap.String("outcome", string(result.Outcome)))
}

func matchResult(state *match.State, player *protocol.Player) storage.MatchResult {
	result := storage.MatchResult{
		Outcome: storage.OutcomeLoss,
	}

	if opponent := state.Opponent(player); opponent != nil {
		result.Opponent = *opponent
	}

	for row := range state.Guesses {
		if state.RowFilled(row) {
			result.Rounds++
		}
	}

	if state.GameOver == nil {
		return result
	}

	result.Answer = state.GameOver.Answer
	switch {
	case state.GameOver.IsDraw():
		result.Outcome = storage.OutcomeDraw
	case state.GameOver.Winner.Is(player):
		result.Outcome = storage.OutcomeWin
	}

	return result
}
