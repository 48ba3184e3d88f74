package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Eligibility is the backend verdict for one criterion
type Eligibility string

const (
	EligibilityYes Eligibility = "Yes"
	EligibilityNo  Eligibility = "No"
)

// Valid reports whether the verdict is one of the two contract values
func (e Eligibility) Valid() bool {
	return e == EligibilityYes || e == EligibilityNo
}

// CriterionResult is the verdict for a single eligibility criterion
type CriterionResult struct {
	Criterion      string      `json:"criterion"`
	EligibilityMet Eligibility `json:"eligibility_met"`
	Reason         string      `json:"reason"`
}

// Outcome is the ordered list of verdicts for one submission. ID is assigned
// on decode so that every response has its own identity.
type Outcome struct {
	ID       string            `json:"id"`
	Criteria []CriterionResult `json:"eligibility_criteria"`
	Result   json.RawMessage   `json:"result,omitempty"`
}

// Len returns the number of criteria
func (o *Outcome) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Criteria)
}

// Empty reports whether there is nothing to present
func (o *Outcome) Empty() bool {
	return o.Len() == 0
}

// Counts returns the number of affirmative and negative verdicts
func (o *Outcome) Counts() (met, notMet int) {
	if o == nil {
		return 0, 0
	}
	for _, c := range o.Criteria {
		if c.EligibilityMet == EligibilityYes {
			met++
		} else {
			notMet++
		}
	}
	return met, notMet
}

// response is the wire shape of a successful /analyze/ call
type response struct {
	EligibilityCriteria json.RawMessage `json:"eligibility_criteria"`
	Result              json.RawMessage `json:"result"`
}

// DecodeOutcome parses a success body. With validate set, the criteria list
// must be present and every verdict must be Yes or No.
func DecodeOutcome(body []byte, validate bool) (*Outcome, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Index: -1, Field: "body", Cause: err}
	}

	outcome := &Outcome{
		ID:     uuid.New().String(),
		Result: resp.Result,
	}

	raw := bytes.TrimSpace(resp.EligibilityCriteria)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		if validate {
			return nil, &MalformedResponseError{Index: -1, Field: "eligibility_criteria"}
		}
		return outcome, nil
	}

	if err := json.Unmarshal(raw, &outcome.Criteria); err != nil {
		return nil, &MalformedResponseError{Index: -1, Field: "eligibility_criteria", Cause: err}
	}

	if validate {
		if err := validateCriteria(outcome.Criteria); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

func validateCriteria(criteria []CriterionResult) error {
	for i, c := range criteria {
		if !c.EligibilityMet.Valid() {
			return &MalformedResponseError{Index: i, Field: "eligibility_met", Value: string(c.EligibilityMet)}
		}
	}
	return nil
}

// String renders a short summary used in logs
func (o *Outcome) String() string {
	met, notMet := o.Counts()
	return fmt.Sprintf("outcome %s: %d criteria (%d met, %d not met)", o.ID, o.Len(), met, notMet)
}
