package components

import (
	"strings"
	"testing"
	"time"

	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/intake"
)

func TestProgressBarFraction(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		total   time.Duration
		want    float64
	}{
		{"start", 0, 10 * time.Second, 0},
		{"half", 5 * time.Second, 10 * time.Second, 0.5},
		{"overrun", 20 * time.Second, 10 * time.Second, 1},
		{"no minimum", time.Second, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewProgressBar(10, Palette{})
			bar.SetProgress(tt.elapsed, tt.total)
			if got := bar.Fraction(); got != tt.want {
				t.Errorf("Fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressBarRender(t *testing.T) {
	bar := NewProgressBar(10, Palette{})
	bar.SetLabel("Waiting")
	bar.SetProgress(5*time.Second, 15*time.Second)

	out := bar.Render()
	if !strings.HasPrefix(out, "Waiting\n") {
		t.Errorf("expected label first, got %q", out)
	}
	if !strings.Contains(out, "5s / 15s") {
		t.Errorf("expected elapsed and total, got %q", out)
	}
}

func TestSlotBoxRender(t *testing.T) {
	slot := intake.NewSlot("rfp", []string{"application/pdf"}, 1,
		intake.WithLabels("Upload RFP Document (PDF)", "Drop your RFP PDF file here."))

	out := SlotBox{Slot: slot, Width: 80}.Render()
	for _, want := range []string{"Upload RFP Document (PDF)", "Drop your RFP PDF file here.", "No file selected"} {
		if !strings.Contains(out, want) {
			t.Errorf("empty slot missing %q", want)
		}
	}

	slot.Submit([]intake.File{intake.NewMemoryFile("rfp.pdf", "application/pdf", make([]byte, 2048))})
	slot.Submit([]intake.File{intake.NewMemoryFile("more.pdf", "application/pdf", nil)})
	out = SlotBox{Slot: slot, Width: 80, Focused: true}.Render()
	if !strings.Contains(out, "rfp.pdf") || !strings.Contains(out, "2.0 KB") {
		t.Errorf("expected file line, got:\n%s", out)
	}
	if !strings.Contains(out, "You can only upload up to 1 files.") {
		t.Errorf("expected capacity error, got:\n%s", out)
	}
}

func TestCriterionCardRender(t *testing.T) {
	result := analysis.CriterionResult{Criterion: "Insurance", EligibilityMet: analysis.EligibilityNo, Reason: "No certificate"}

	collapsed := CriterionCard{Result: result, Width: 60}.Render()
	if !strings.Contains(collapsed, "Insurance") {
		t.Error("expected criterion name")
	}
	if strings.Contains(collapsed, "No certificate") {
		t.Error("reason should be hidden when collapsed")
	}

	expanded := CriterionCard{Result: result, Width: 60, Expanded: true}.Render()
	if !strings.Contains(expanded, "Eligibility Met: No") || !strings.Contains(expanded, "No certificate") {
		t.Errorf("expected verdict and reason, got:\n%s", expanded)
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		12:      "12 B",
		2048:    "2.0 KB",
		3 << 20: "3.0 MB",
	}
	for n, want := range tests {
		if got := formatSize(n); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", n, got, want)
		}
	}
}
