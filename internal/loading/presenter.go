// Package loading drives the waiting screen shown while an analysis is in
// flight: a rotating list of facts and an elapsed-time accumulator that
// reports, once per mount, when the minimum display time has been reached.
package loading

import (
	"sync"
	"time"
)

const (
	DefaultRotationPeriod = 5 * time.Second
	DefaultTickPeriod     = time.Second
	DefaultMinimum        = 15 * time.Second
)

// Fact is one line of text shown while waiting
type Fact struct {
	Text string `json:"text"`
}

// Option configures a Presenter
type Option func(*Presenter)

// WithRotationPeriod sets how long each fact stays on screen
func WithRotationPeriod(d time.Duration) Option {
	return func(p *Presenter) {
		if d > 0 {
			p.rotation = d
		}
	}
}

// WithTickPeriod sets the elapsed-time granularity
func WithTickPeriod(d time.Duration) Option {
	return func(p *Presenter) {
		if d > 0 {
			p.tick = d
		}
	}
}

// WithMinimum sets the minimum display time
func WithMinimum(d time.Duration) Option {
	return func(p *Presenter) {
		if d >= 0 {
			p.minimum = d
		}
	}
}

// OnMinimum registers the callback fired once per mount when the minimum
// display time is reached
func OnMinimum(fn func()) Option {
	return func(p *Presenter) { p.onMinimum = fn }
}

// OnRotate registers a callback receiving each newly displayed fact
func OnRotate(fn func(Fact)) Option {
	return func(p *Presenter) { p.onRotate = fn }
}

// Presenter holds the loading screen state. Timer events carry the mount
// generation they were scheduled under; events from an earlier mount are
// dropped, which is how pending timers are cancelled on unmount.
type Presenter struct {
	rotation  time.Duration
	tick      time.Duration
	minimum   time.Duration
	onMinimum func()
	onRotate  func(Fact)

	mu      sync.Mutex
	facts   []Fact
	gen     uint64
	mounted bool
	index   int
	elapsed time.Duration
	fired   bool
}

// NewPresenter creates a presenter over facts, which may be empty
func NewPresenter(facts []Fact, opts ...Option) *Presenter {
	p := &Presenter{
		rotation: DefaultRotationPeriod,
		tick:     DefaultTickPeriod,
		minimum:  DefaultMinimum,
		facts:    append([]Fact(nil), facts...),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mount starts a new display and returns its generation
func (p *Presenter) Mount() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.mounted = true
	p.index = 0
	p.elapsed = 0
	p.fired = false
	return p.gen
}

// Unmount invalidates every outstanding timer of the current mount
func (p *Presenter) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.mounted = false
}

// Generation returns the current mount generation
func (p *Presenter) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// SetFacts replaces the fact list, typically once the async load finishes
func (p *Presenter) SetFacts(facts []Fact) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.facts = append([]Fact(nil), facts...)
	p.index = 0
}

// Rotate advances to the next fact. It reports false for a stale generation.
func (p *Presenter) Rotate(gen uint64) bool {
	p.mu.Lock()
	if !p.live(gen) {
		p.mu.Unlock()
		return false
	}
	var (
		fact Fact
		ok   bool
	)
	if len(p.facts) > 0 {
		p.index = (p.index + 1) % len(p.facts)
		fact, ok = p.facts[p.index], true
	}
	cb := p.onRotate
	p.mu.Unlock()

	if ok && cb != nil {
		cb(fact)
	}
	return true
}

// Tick adds one tick period to the elapsed time and reports false for a
// stale generation. The minimum callback fires on the first tick that
// reaches the threshold and never again during this mount.
func (p *Presenter) Tick(gen uint64) bool {
	p.mu.Lock()
	if !p.live(gen) {
		p.mu.Unlock()
		return false
	}
	p.elapsed += p.tick
	fire := !p.fired && p.elapsed >= p.minimum
	if fire {
		p.fired = true
	}
	cb := p.onMinimum
	p.mu.Unlock()

	if fire && cb != nil {
		cb()
	}
	return true
}

func (p *Presenter) live(gen uint64) bool {
	return p.mounted && gen == p.gen
}

// Current returns the fact on display, or false when there is nothing to show
func (p *Presenter) Current() (Fact, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.facts) == 0 {
		return Fact{}, false
	}
	return p.facts[p.index], true
}

// Index returns the position of the current fact
func (p *Presenter) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Elapsed returns the accumulated display time for this mount
func (p *Presenter) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elapsed
}

// MinimumReached reports whether the minimum callback has fired this mount
func (p *Presenter) MinimumReached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fired
}

// Progress returns elapsed/minimum clamped to [0, 1]
func (p *Presenter) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.minimum <= 0 {
		return 1
	}
	ratio := float64(p.elapsed) / float64(p.minimum)
	if ratio > 1 {
		return 1
	}
	return ratio
}

func (p *Presenter) RotationPeriod() time.Duration { return p.rotation }
func (p *Presenter) TickPeriod() time.Duration     { return p.tick }
func (p *Presenter) Minimum() time.Duration        { return p.minimum }
