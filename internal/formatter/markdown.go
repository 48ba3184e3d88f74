package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/results"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(outcome *analysis.Outcome) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Analysis Result\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	if outcome.Empty() {
		b.WriteString("_No Analysis Result Found_\n")
		return []byte(b.String()), nil
	}

	f.writeSummaryTable(&b, outcome)
	f.writeCriteriaTable(&b, outcome)
	f.writeReasons(&b, outcome)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, outcome *analysis.Outcome) {
	met, notMet := outcome.Counts()

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Criteria | %d |\n", outcome.Len())
	fmt.Fprintf(b, "| Met | %d |\n", met)
	fmt.Fprintf(b, "| Not Met | %d |\n", notMet)
	fmt.Fprintf(b, "| Eligibility Rate | %.0f%% |\n\n", eligibilityRate(outcome)*100)
}

func (f *markdownFormatter) writeCriteriaTable(b *strings.Builder, outcome *analysis.Outcome) {
	b.WriteString("## Criteria\n\n")
	b.WriteString("| # | Criterion | Eligibility Met |\n")
	b.WriteString("|---|-----------|-----------------|\n")
	for i, c := range outcome.Criteria {
		mark := "❌"
		if results.VerdictOf(c) == results.Affirmative {
			mark = "✅"
		}
		fmt.Fprintf(b, "| %d | %s | %s %s |\n", i+1, escapeTableCell(c.Criterion), mark, verdictLabel(c))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeReasons(b *strings.Builder, outcome *analysis.Outcome) {
	b.WriteString("## Details\n\n")
	for i, c := range outcome.Criteria {
		fmt.Fprintf(b, "### %d. %s\n\n", i+1, c.Criterion)
		fmt.Fprintf(b, "**Eligibility Met:** %s\n\n", verdictLabel(c))
		if c.Reason != "" {
			b.WriteString(c.Reason + "\n\n")
		}
	}
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
