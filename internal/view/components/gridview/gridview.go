package gridview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/six78/wordle-duel-cli/internal/view/messages"
	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

const (
	textColor    = lipgloss.Color("#FAFAFA")
	hitColor     = lipgloss.Color("#538D4E")
	presentColor = lipgloss.Color("#B59F3B")
	missColor    = lipgloss.Color("#3A3A3C")
	emptyColor   = lipgloss.Color("#555555")
	typingColor  = lipgloss.Color("#7D56F4")
)

var (
	cellStyle = lipgloss.NewStyle().
			Width(3).
			Align(lipgloss.Center).
			Foreground(textColor)
	hitStyle      = cellStyle.Copy().Background(hitColor)
	presentStyle  = cellStyle.Copy().Background(presentColor)
	missStyle     = cellStyle.Copy().Background(missColor)
	emptyStyle    = cellStyle.Copy().Foreground(emptyColor)
	myGuessStyle  = cellStyle.Copy().Foreground(typingColor).Bold(true)
	opponentStyle = cellStyle.Copy().Foreground(emptyColor).Italic(true)
)

const emptyCell = "·"

type Model struct {
	state *match.State
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
		m.state = msg.Update.State
	}
	return m
}

func (m Model) View() string {
	if m.state == nil {
		return ""
	}

	rows := make([]string, 0, len(m.state.Guesses))
	for i, row := range m.state.Guesses {
		rows = append(rows, m.renderRow(i, row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderRow(index int, row []*match.Cell) string {
	if m.state.RowFilled(index) {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = RenderCell(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	if index != m.state.CurrentRow() || m.state.Terminal() {
		return renderLetters(nil, len(row), emptyStyle)
	}

	if m.state.MyTurn {
		return renderLetters(m.state.CurrentGuess, len(row), myGuessStyle)
	}

	return renderLetters([]rune(m.state.OpponentGuess), len(row), opponentStyle)
}

// RenderCell renders a letter with the color of its match type.
func RenderCell(cell *match.Cell) string {
	if cell == nil {
		return emptyStyle.Render(emptyCell)
	}

	letter := " "
	if cell.Letter != 0 {
		letter = strings.ToUpper(cell.Letter.String())
	}

	switch cell.MatchType {
	case protocol.Hit:
		return hitStyle.Render(letter)
	case protocol.Present:
		return presentStyle.Render(letter)
	default:
		return missStyle.Render(letter)
	}
}

func renderLetters(letters []rune, length int, style lipgloss.Style) string {
	cells := make([]string, length)
	for i := range cells {
		if i < len(letters) {
			cells[i] = style.Render(string(letters[i]))
		} else {
			cells[i] = emptyStyle.Render(emptyCell)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
