package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/results"
)

// CriterionCard renders one criterion of the result view. The border and
// marker follow the verdict; the reason is only shown when expanded.
type CriterionCard struct {
	Result   analysis.CriterionResult
	Expanded bool
	Selected bool
	Width    int
	Palette  Palette
}

// Render renders the card
func (c CriterionCard) Render() string {
	verdict := results.VerdictOf(c.Result)

	accent := color(c.Palette.Negative)
	marker := emoji.GetEmoji("negative")
	if verdict == results.Affirmative {
		accent = color(c.Palette.Affirmative)
		marker = emoji.GetEmoji("affirmative")
	}

	toggle := emoji.GetEmoji("collapse")
	if c.Expanded {
		toggle = emoji.GetEmoji("expand")
	}

	border := lipgloss.NormalBorder()
	if c.Selected {
		border = lipgloss.ThickBorder()
	}
	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(accent).
		Padding(0, 1)
	if c.Width > 4 {
		box = box.Width(c.Width - 2)
	}

	heading := lipgloss.NewStyle().Bold(true)
	if c.Selected {
		heading = heading.Background(color(c.Palette.Selected))
	}
	status := lipgloss.NewStyle().Foreground(accent).Bold(true)
	muted := lipgloss.NewStyle().Foreground(color(c.Palette.Muted))

	lines := []string{
		toggle + " " + marker + " " + heading.Render(c.Result.Criterion),
	}
	if c.Expanded {
		lines = append(lines,
			status.Render("Eligibility Met: "+string(c.Result.EligibilityMet)),
			muted.Render(c.Result.Reason),
		)
	}

	return box.Render(strings.Join(lines, "\n"))
}
