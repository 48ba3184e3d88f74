package results

import "github.com/yildizm/RFPCheck/internal/analysis"

// Verdict is the display treatment of one criterion
type Verdict int

const (
	Negative Verdict = iota
	Affirmative
)

func (v Verdict) String() string {
	if v == Affirmative {
		return "affirmative"
	}
	return "negative"
}

// VerdictOf maps a backend verdict to its display treatment. Only "Yes" is
// affirmative; every other value renders negative.
func VerdictOf(r analysis.CriterionResult) Verdict {
	if r.EligibilityMet == analysis.EligibilityYes {
		return Affirmative
	}
	return Negative
}
