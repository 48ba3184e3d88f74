package analysis

import (
	"testing"
)

func TestDecodeOutcomeLenient(t *testing.T) {
	body := []byte(`{"eligibility_criteria":[{"criterion":"Budget","eligibility_met":"Maybe","reason":"unclear"}]}`)

	outcome, err := DecodeOutcome(body, false)
	if err != nil {
		t.Fatalf("DecodeOutcome() error = %v", err)
	}
	if outcome.Criteria[0].EligibilityMet != "Maybe" {
		t.Errorf("EligibilityMet = %q, want passthrough", outcome.Criteria[0].EligibilityMet)
	}

	met, notMet := outcome.Counts()
	if met != 0 || notMet != 1 {
		t.Errorf("Counts() = %d, %d; want 0, 1", met, notMet)
	}
}

func TestDecodeOutcomeMissingCriteriaLenient(t *testing.T) {
	outcome, err := DecodeOutcome([]byte(`{}`), false)
	if err != nil {
		t.Fatalf("DecodeOutcome() error = %v", err)
	}
	if !outcome.Empty() {
		t.Errorf("expected empty outcome, got %d criteria", outcome.Len())
	}
}

func TestDecodeOutcomeFreshIdentity(t *testing.T) {
	body := []byte(`{"eligibility_criteria":[]}`)

	first, err := DecodeOutcome(body, true)
	if err != nil {
		t.Fatalf("DecodeOutcome() error = %v", err)
	}
	second, err := DecodeOutcome(body, true)
	if err != nil {
		t.Fatalf("DecodeOutcome() error = %v", err)
	}

	if first.ID == second.ID {
		t.Error("identical bodies should still decode to distinct outcomes")
	}
	if !first.Empty() {
		t.Error("expected empty criteria list")
	}
}

func TestDecodeOutcomePreservesOrder(t *testing.T) {
	body := []byte(`{"eligibility_criteria":[
		{"criterion":"A","eligibility_met":"No","reason":"r1"},
		{"criterion":"B","eligibility_met":"Yes","reason":"r2"},
		{"criterion":"C","eligibility_met":"No","reason":"r3"}
	]}`)

	outcome, err := DecodeOutcome(body, true)
	if err != nil {
		t.Fatalf("DecodeOutcome() error = %v", err)
	}

	want := []string{"A", "B", "C"}
	for i, c := range outcome.Criteria {
		if c.Criterion != want[i] {
			t.Errorf("Criteria[%d] = %q, want %q", i, c.Criterion, want[i])
		}
	}
	if met, notMet := outcome.Counts(); met != 1 || notMet != 2 {
		t.Errorf("Counts() = %d, %d; want 1, 2", met, notMet)
	}
}

func TestNilOutcome(t *testing.T) {
	var outcome *Outcome
	if !outcome.Empty() || outcome.Len() != 0 {
		t.Error("nil outcome should be empty")
	}
}

func TestDecodeOutcomeValidatesVerdictOnly(t *testing.T) {
	body := []byte(`{"eligibility_criteria":[{"criterion":"","eligibility_met":"Yes","reason":""}]}`)

	outcome, err := DecodeOutcome(body, true)
	if err != nil {
		t.Fatalf("DecodeOutcome() error = %v", err)
	}
	if outcome.Len() != 1 || outcome.Criteria[0].EligibilityMet != EligibilityYes {
		t.Errorf("unexpected outcome: %+v", outcome.Criteria)
	}
}
