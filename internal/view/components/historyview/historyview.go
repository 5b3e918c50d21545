package historyview

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/pkg/storage"
)

const (
	textColor  = lipgloss.Color("#FAFAFA")
	winColor   = lipgloss.Color("#00E676")
	lossColor  = lipgloss.Color("#FF5722")
	dateLayout = "2006-01-02 15:04"
)

var (
	cellStyle   = lipgloss.NewStyle().Foreground(textColor).PaddingLeft(1).PaddingRight(1)
	headerStyle = cellStyle.Copy().Bold(true)
	winStyle    = cellStyle.Copy().Foreground(winColor)
	lossStyle   = cellStyle.Copy().Foreground(lossColor)
	borderStyle = lipgloss.NewStyle().Foreground(config.ForegroundShadeColor)
)

var headers = []string{"Date", "Opponent", "Outcome", "Answer", "Rounds"}

const outcomeColumn = 2

// Render prints the match history, most recent match first.
func Render(results []storage.MatchResult) string {
	if len(results) == 0 {
		return "No matches played yet"
	}

	rows := make([][]string, 0, len(results))
	outcomes := make([]storage.Outcome, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		result := results[i]
		rows = append(rows, []string{
			result.FinishedAt.In(time.Local).Format(dateLayout),
			result.Opponent.Nickname,
			string(result.Outcome),
			result.Answer,
			strconv.Itoa(result.Rounds),
		})
		outcomes = append(outcomes, result.Outcome)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == 0:
				return headerStyle
			case col == outcomeColumn:
				return outcomeStyle(outcomes[row-1])
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}

func outcomeStyle(outcome storage.Outcome) lipgloss.Style {
	switch outcome {
	case storage.OutcomeWin:
		return winStyle
	case storage.OutcomeLoss:
		return lossStyle
	default:
		return cellStyle
	}
}
