package gridview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/six78/wordle-duel-cli/internal/view/messages"
	"github.com/six78/wordle-duel-cli/pkg/game"
	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newState(rows int, length int) *match.State {
	state := &match.State{
		Guesses:      make([][]*match.Cell, rows),
		CurrentRound: 0,
		FirstRound:   0,
		Interactive:  true,
	}
	for i := range state.Guesses {
		state.Guesses[i] = make([]*match.Cell, length)
	}
	return state
}

func render(state *match.State) []string {
	m := New().Update(messages.GameUpdateMessage{Update: game.Update{State: state}})
	return strings.Split(m.View(), "\n")
}

func TestEmpty(t *testing.T) {
	require.Empty(t, New().View())
}

func TestMyGuess(t *testing.T) {
	state := newState(2, 3)
	state.MyTurn = true
	state.CurrentGuess = []rune("AB")

	lines := render(state)
	require.Len(t, lines, 2)
	require.Equal(t, " A  B  · ", lines[0])
	require.Equal(t, " ·  ·  · ", lines[1])
}

func TestOpponentGuess(t *testing.T) {
	state := newState(2, 3)
	state.CurrentRound = 1
	state.OpponentGuess = "XY"
	state.Guesses[0] = []*match.Cell{
		{Letter: 'C', MatchType: protocol.Hit},
		{Letter: 'A', MatchType: protocol.Present},
		{Letter: 'T', MatchType: protocol.Miss},
	}

	lines := render(state)
	require.Len(t, lines, 2)
	require.Equal(t, " C  A  T ", lines[0])
	require.Equal(t, " X  Y  · ", lines[1])
}

func TestTerminalHidesTyping(t *testing.T) {
	state := newState(1, 2)
	state.MyTurn = true
	state.CurrentGuess = []rune("AB")
	state.GameOver = &protocol.GameOverPayload{Answer: "AB"}

	lines := render(state)
	require.Equal(t, []string{" ·  · "}, lines)
}

func TestRenderCell(t *testing.T) {
	require.Equal(t, " · ", RenderCell(nil))
	require.Equal(t, " Q ", RenderCell(&match.Cell{Letter: 'q', MatchType: protocol.Hit}))
	require.Equal(t, "   ", RenderCell(&match.Cell{MatchType: protocol.Miss}))
}
