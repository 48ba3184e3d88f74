// Package submission gates and sequences the analysis request for a pair of
// upload slots.
package submission

import (
	"context"
	"sync"
	"time"

	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/intake"
	"github.com/yildizm/RFPCheck/internal/logger"
)

// Analyzer performs the remote analysis for one document pair
type Analyzer interface {
	Analyze(ctx context.Context, rfp, proposal intake.File) (*analysis.Outcome, error)
}

// AnalyzerFunc adapts a function to Analyzer
type AnalyzerFunc func(ctx context.Context, rfp, proposal intake.File) (*analysis.Outcome, error)

// Analyze implements Analyzer
func (f AnalyzerFunc) Analyze(ctx context.Context, rfp, proposal intake.File) (*analysis.Outcome, error) {
	return f(ctx, rfp, proposal)
}

// Option configures a Coordinator
type Option func(*Coordinator)

// OnStateChange registers an observer called on every transition
func OnStateChange(fn func(from, to State)) Option {
	return func(c *Coordinator) { c.onStateChange = fn }
}

// OnSuccess registers the receiver of a successful outcome
func OnSuccess(fn func(*analysis.Outcome)) Option {
	return func(c *Coordinator) { c.onSuccess = fn }
}

// OnError registers the receiver of a failed attempt's error
func OnError(fn func(error)) Option {
	return func(c *Coordinator) { c.onError = fn }
}

// WithMinimumDuration holds a successful result until d has passed since the
// request started. Failures are reported immediately.
func WithMinimumDuration(d time.Duration) Option {
	return func(c *Coordinator) { c.minimum = d }
}

// WithLogger sets the coordinator logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// Coordinator owns the submission lifecycle. At most one request is in
// flight at any time; the upload slots are read but never cleared.
type Coordinator struct {
	rfp      *intake.Slot
	proposal *intake.Slot
	analyzer Analyzer

	onStateChange func(from, to State)
	onSuccess     func(*analysis.Outcome)
	onError       func(error)
	minimum       time.Duration
	log           *logger.Logger

	mu    sync.Mutex
	state State
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a coordinator over the two slots
func New(rfp, proposal *intake.Slot, analyzer Analyzer, opts ...Option) *Coordinator {
	c := &Coordinator{
		rfp:      rfp,
		proposal: proposal,
		analyzer: analyzer,
		state:    Idle,
		log:      logger.Nop(),
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSubmit reports whether the trigger should be enabled
func (c *Coordinator) CanSubmit() bool {
	return c.State().Submittable()
}

// Ready reports whether both slots hold a document
func (c *Coordinator) Ready() bool {
	return c.rfp.Len() > 0 && c.proposal.Len() > 0
}

// Reset returns a finished coordinator to Idle for a new submission. It is a
// no-op while a request is pending.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	if c.state == Pending || c.state == Idle {
		c.mu.Unlock()
		return
	}
	from := c.state
	c.state = Idle
	c.mu.Unlock()
	c.notify(from, Idle)
}

// Submit sends the first document of each slot to the analyzer and blocks
// until it answers. It returns a *PreconditionError when a slot is empty and
// ErrSubmissionPending when another call is outstanding; neither issues a
// request. On failure the coordinator passes through Failed back to Idle.
func (c *Coordinator) Submit(ctx context.Context) (*analysis.Outcome, error) {
	rfp, rfpOK := c.rfp.First()
	proposal, proposalOK := c.proposal.First()
	if !rfpOK || !proposalOK {
		var missing []string
		if !rfpOK {
			missing = append(missing, c.rfp.Name())
		}
		if !proposalOK {
			missing = append(missing, c.proposal.Name())
		}
		c.log.Warn("submit rejected, missing documents: %v", missing)
		return nil, &PreconditionError{Missing: missing}
	}

	c.mu.Lock()
	switch c.state {
	case Pending:
		c.mu.Unlock()
		c.log.Debug("submit ignored, request already pending")
		return nil, ErrSubmissionPending
	case Succeeded:
		c.mu.Unlock()
		return nil, ErrSubmissionComplete
	}
	from := c.state
	c.state = Pending
	c.mu.Unlock()
	c.notify(from, Pending)

	started := c.now()
	c.log.InfoWithFields("submitting documents", []logger.Field{
		logger.F("rfp", rfp.Name),
		logger.F("proposal", proposal.Name),
	})

	outcome, err := c.analyzer.Analyze(ctx, rfp, proposal)
	if err == nil && c.minimum > 0 {
		if remaining := c.minimum - c.now().Sub(started); remaining > 0 {
			c.log.Debug("holding result for %s", remaining)
			err = c.sleep(ctx, remaining)
		}
	}

	if err != nil {
		c.fail(err)
		return nil, err
	}

	c.transition(Pending, Succeeded)
	c.log.InfoWithFields("analysis succeeded", []logger.Field{
		logger.Count(outcome.Len()),
		logger.Duration(c.now().Sub(started)),
	})
	if c.onSuccess != nil {
		c.onSuccess(outcome)
	}
	return outcome, nil
}

func (c *Coordinator) fail(err error) {
	c.log.ErrorWithFields("analysis failed", []logger.Field{logger.Error(err)})
	c.transition(Pending, Failed)
	if c.onError != nil {
		c.onError(err)
	}
	c.transition(Failed, Idle)
}

func (c *Coordinator) transition(from, to State) {
	c.mu.Lock()
	c.state = to
	c.mu.Unlock()
	c.notify(from, to)
}

func (c *Coordinator) notify(from, to State) {
	c.log.DebugWithFields("state change", []logger.Field{logger.F("from", from), logger.State(to)})
	if c.onStateChange != nil {
		c.onStateChange(from, to)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
