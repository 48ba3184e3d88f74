package submission

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/intake"
)

func newSlots(withRFP, withProposal bool) (*intake.Slot, *intake.Slot) {
	rfp := intake.NewSlot("rfp", []string{"application/pdf"}, 1)
	proposal := intake.NewSlot("proposal", []string{"application/pdf"}, 1)
	if withRFP {
		rfp.Submit([]intake.File{intake.NewMemoryFile("rfp.pdf", "application/pdf", []byte("rfp"))})
	}
	if withProposal {
		proposal.Submit([]intake.File{intake.NewMemoryFile("proposal.pdf", "application/pdf", []byte("proposal"))})
	}
	return rfp, proposal
}

func sampleOutcome() *analysis.Outcome {
	return &analysis.Outcome{
		ID: "outcome-1",
		Criteria: []analysis.CriterionResult{
			{Criterion: "Budget", EligibilityMet: analysis.EligibilityYes, Reason: "Within range"},
		},
	}
}

type countingAnalyzer struct {
	calls   atomic.Int32
	outcome *analysis.Outcome
	err     error
	gate    chan struct{}
	entered chan struct{}
}

func (a *countingAnalyzer) Analyze(ctx context.Context, rfp, proposal intake.File) (*analysis.Outcome, error) {
	a.calls.Add(1)
	if a.entered != nil {
		a.entered <- struct{}{}
	}
	if a.gate != nil {
		<-a.gate
	}
	return a.outcome, a.err
}

func TestSubmitPrecondition(t *testing.T) {
	tests := []struct {
		name         string
		withRFP      bool
		withProposal bool
		wantMissing  []string
	}{
		{name: "both empty", wantMissing: []string{"rfp", "proposal"}},
		{name: "proposal empty", withRFP: true, wantMissing: []string{"proposal"}},
		{name: "rfp empty", withProposal: true, wantMissing: []string{"rfp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rfp, proposal := newSlots(tt.withRFP, tt.withProposal)
			analyzer := &countingAnalyzer{outcome: sampleOutcome()}
			var transitions int
			c := New(rfp, proposal, analyzer, OnStateChange(func(from, to State) { transitions++ }))

			_, err := c.Submit(context.Background())

			var pe *PreconditionError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *PreconditionError, got %v", err)
			}
			if len(pe.Missing) != len(tt.wantMissing) {
				t.Fatalf("Missing = %v, want %v", pe.Missing, tt.wantMissing)
			}
			for i := range pe.Missing {
				if pe.Missing[i] != tt.wantMissing[i] {
					t.Errorf("Missing[%d] = %q, want %q", i, pe.Missing[i], tt.wantMissing[i])
				}
			}
			if analyzer.calls.Load() != 0 {
				t.Errorf("analyzer called %d times, want 0", analyzer.calls.Load())
			}
			if c.State() != Idle || transitions != 0 {
				t.Errorf("state = %s after %d transitions, want idle with none", c.State(), transitions)
			}
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	rfp, proposal := newSlots(true, true)
	analyzer := &countingAnalyzer{outcome: sampleOutcome()}

	var delivered *analysis.Outcome
	var states []State
	c := New(rfp, proposal, analyzer,
		OnSuccess(func(o *analysis.Outcome) { delivered = o }),
		OnStateChange(func(from, to State) { states = append(states, to) }),
	)

	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if outcome != delivered {
		t.Error("OnSuccess should receive the returned outcome")
	}
	if c.State() != Succeeded {
		t.Errorf("State() = %s, want succeeded", c.State())
	}
	if c.CanSubmit() {
		t.Error("trigger should be disabled after success")
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmissionComplete) {
		t.Errorf("second Submit() error = %v, want ErrSubmissionComplete", err)
	}

	want := []State{Pending, Succeeded}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("states[%d] = %s, want %s", i, states[i], want[i])
		}
	}

	c.Reset()
	if c.State() != Idle {
		t.Errorf("State() after Reset = %s, want idle", c.State())
	}
}

func TestSubmitFailureReturnsToIdle(t *testing.T) {
	rfp, proposal := newSlots(true, true)
	failure := &analysis.RequestFailedError{Status: 500, Body: "internal error"}
	analyzer := &countingAnalyzer{err: failure}

	var surfaced error
	var stateAtError State
	var states []State
	var c *Coordinator
	c = New(rfp, proposal, analyzer,
		OnError(func(err error) {
			surfaced = err
			stateAtError = c.State()
		}),
		OnStateChange(func(from, to State) { states = append(states, to) }),
	)

	_, err := c.Submit(context.Background())
	if !analysis.IsRequestFailed(err) {
		t.Fatalf("Submit() error = %v, want request failure", err)
	}
	if surfaced != err {
		t.Error("OnError should receive the returned error")
	}
	if stateAtError != Failed {
		t.Errorf("state during OnError = %s, want failed", stateAtError)
	}
	if c.State() != Idle {
		t.Errorf("State() = %s, want idle", c.State())
	}
	if !c.CanSubmit() {
		t.Error("trigger should be re-enabled after failure")
	}
	if rfp.Len() != 1 || proposal.Len() != 1 {
		t.Error("slots must keep their files after a failure")
	}

	want := []State{Pending, Failed, Idle}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("states[%d] = %s, want %s", i, states[i], want[i])
		}
	}
}

func TestSubmitSingleInFlight(t *testing.T) {
	rfp, proposal := newSlots(true, true)
	analyzer := &countingAnalyzer{
		outcome: sampleOutcome(),
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	c := New(rfp, proposal, analyzer)

	first := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		first <- err
	}()
	<-analyzer.entered

	if c.State() != Pending {
		t.Fatalf("State() = %s, want pending", c.State())
	}
	if c.CanSubmit() {
		t.Error("trigger should be disabled while pending")
	}

	const extra = 8
	var wg sync.WaitGroup
	var pending atomic.Int32
	for i := 0; i < extra; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Submit(context.Background()); errors.Is(err, ErrSubmissionPending) {
				pending.Add(1)
			}
		}()
	}
	wg.Wait()

	close(analyzer.gate)
	if err := <-first; err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}

	if got := analyzer.calls.Load(); got != 1 {
		t.Errorf("analyzer called %d times, want 1", got)
	}
	if got := pending.Load(); got != extra {
		t.Errorf("%d submits reported pending, want %d", got, extra)
	}
}

func TestSubmitMinimumDuration(t *testing.T) {
	rfp, proposal := newSlots(true, true)

	t.Run("success is held", func(t *testing.T) {
		c := New(rfp, proposal, &countingAnalyzer{outcome: sampleOutcome()}, WithMinimumDuration(time.Second))
		var slept time.Duration
		c.sleep = func(ctx context.Context, d time.Duration) error {
			slept = d
			return nil
		}

		if _, err := c.Submit(context.Background()); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if slept <= 0 || slept > time.Second {
			t.Errorf("slept %s, want within (0, 1s]", slept)
		}
	})

	t.Run("failure is not held", func(t *testing.T) {
		c := New(rfp, proposal, &countingAnalyzer{err: errors.New("boom")}, WithMinimumDuration(time.Second))
		c.sleep = func(ctx context.Context, d time.Duration) error {
			t.Error("failure should not wait")
			return nil
		}

		if _, err := c.Submit(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("canceled wait fails", func(t *testing.T) {
		c := New(rfp, proposal, &countingAnalyzer{outcome: sampleOutcome()}, WithMinimumDuration(time.Hour))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Submit(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Submit() error = %v, want context.Canceled", err)
		}
		if c.State() != Idle {
			t.Errorf("State() = %s, want idle", c.State())
		}
	})
}

func TestAnalyzerFunc(t *testing.T) {
	rfp, proposal := newSlots(true, true)
	var gotRFP, gotProposal string
	c := New(rfp, proposal, AnalyzerFunc(func(ctx context.Context, r, p intake.File) (*analysis.Outcome, error) {
		gotRFP, gotProposal = r.Name, p.Name
		return sampleOutcome(), nil
	}))

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if gotRFP != "rfp.pdf" || gotProposal != "proposal.pdf" {
		t.Errorf("analyzer got %q, %q", gotRFP, gotProposal)
	}
}
