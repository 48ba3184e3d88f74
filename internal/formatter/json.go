package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/yildizm/RFPCheck/internal/analysis"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	ID       string                     `json:"id"`
	Summary  *SummaryOutput             `json:"summary"`
	Criteria []analysis.CriterionResult `json:"eligibility_criteria"`
	Result   json.RawMessage            `json:"result,omitempty"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Total           int     `json:"total"`
	Met             int     `json:"met"`
	NotMet          int     `json:"not_met"`
	EligibilityRate float64 `json:"eligibility_rate"`
}

func (f *jsonFormatter) Format(outcome *analysis.Outcome) ([]byte, error) {
	output := &JSONOutput{
		Summary:  createSummary(outcome),
		Criteria: []analysis.CriterionResult{},
	}
	if outcome != nil {
		output.ID = outcome.ID
		output.Result = outcome.Result
		if outcome.Criteria != nil {
			output.Criteria = outcome.Criteria
		}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

func createSummary(outcome *analysis.Outcome) *SummaryOutput {
	met, notMet := outcome.Counts()
	return &SummaryOutput{
		Total:           outcome.Len(),
		Met:             met,
		NotMet:          notMet,
		EligibilityRate: eligibilityRate(outcome),
	}
}
