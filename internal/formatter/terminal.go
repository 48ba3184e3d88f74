package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/results"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(outcome *analysis.Outcome) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)

	if outcome.Empty() {
		symbol := termfmt.GetEmoji("warning", f.opts)
		b.WriteString(symbol + " No Analysis Result Found\n")
		return []byte(b.String()), nil
	}

	f.writeSummary(&b, outcome)
	f.writeCriteria(&b, outcome)

	return []byte(b.String()), nil
}

// writeSummary writes the verdict counts with tree-style formatting
func (f *terminalFormatter) writeSummary(b *strings.Builder, outcome *analysis.Outcome) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Summary\n")

	met, notMet := outcome.Counts()
	rate := eligibilityRate(outcome)

	items := []termfmt.TreeItem{
		{Label: "Criteria", Value: fmt.Sprintf("%d", outcome.Len())},
		{Label: "Met", Value: fmt.Sprintf("%d", met)},
		{Label: "Not Met", Value: fmt.Sprintf("%d", notMet)},
		{Label: "Eligibility", Value: termfmt.CreateConfidenceBar(rate, f.opts) + fmt.Sprintf(" %.0f%%", rate*100), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeCriteria writes every criterion in response order with its reason
func (f *terminalFormatter) writeCriteria(b *strings.Builder, outcome *analysis.Outcome) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Criteria\n")

	items := make([]termfmt.TreeItem, 0, outcome.Len())
	for i, c := range outcome.Criteria {
		key := "negative"
		if results.VerdictOf(c) == results.Affirmative {
			key = "affirmative"
		}

		children := []termfmt.TreeItem{
			{Label: "Eligibility Met", Value: verdictLabel(c)},
		}
		if c.Reason != "" {
			children = append(children, termfmt.TreeItem{Label: "Reason", Value: c.Reason, Last: true})
		} else {
			children[0].Last = true
		}

		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("%s %s", emoji.GetEmoji(key), c.Criterion),
			Children: children,
			Last:     i == outcome.Len()-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n")
}

// writeHeader writes the boxed report title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Analysis Result"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}
