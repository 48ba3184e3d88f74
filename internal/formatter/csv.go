package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/yildizm/RFPCheck/internal/analysis"
)

// csvFormatter formats criteria as CSV rows
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(outcome *analysis.Outcome) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{"Index", "Criterion", "Eligibility Met", "Reason"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	if outcome != nil {
		for i, c := range outcome.Criteria {
			record := []string{
				fmt.Sprintf("%d", i+1),
				c.Criterion,
				verdictLabel(c),
				flattenCSVString(c.Reason),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// flattenCSVString keeps each record on one line
func flattenCSVString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
