package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/RFPCheck/internal/analysis"
)

// Formatter renders an analysis outcome for output
type Formatter interface {
	Format(outcome *analysis.Outcome) ([]byte, error)
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "markdown", "csv"}

// New returns the formatter for a format name
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text", "terminal":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// verdictLabel returns the display word for a criterion verdict
func verdictLabel(r analysis.CriterionResult) string {
	if r.EligibilityMet == "" {
		return "Unknown"
	}
	return string(r.EligibilityMet)
}

func eligibilityRate(outcome *analysis.Outcome) float64 {
	if outcome.Empty() {
		return 0
	}
	met, _ := outcome.Counts()
	return float64(met) / float64(outcome.Len())
}
