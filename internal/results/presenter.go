// Package results holds the expand/collapse state of a displayed outcome.
package results

import "github.com/yildizm/RFPCheck/internal/analysis"

const (
	ExpandAllLabel   = "Expand All"
	CollapseAllLabel = "Collapse All"
)

// Presenter tracks which criteria of the current outcome are expanded. It is
// driven from a single UI goroutine and is not synchronized.
type Presenter struct {
	outcome     *analysis.Outcome
	expanded    []bool
	allExpanded bool
}

// NewPresenter creates a presenter with nothing loaded
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Load shows outcome. A different outcome (by ID) starts fully collapsed; the
// same outcome keeps its expansion state.
func (p *Presenter) Load(outcome *analysis.Outcome) {
	if outcome != nil && p.outcome != nil && outcome.ID == p.outcome.ID && len(p.expanded) == outcome.Len() {
		p.outcome = outcome
		return
	}
	p.outcome = outcome
	p.expanded = make([]bool, outcome.Len())
	p.allExpanded = false
}

// Outcome returns the loaded outcome
func (p *Presenter) Outcome() *analysis.Outcome {
	return p.outcome
}

// Empty reports whether there is no outcome to show
func (p *Presenter) Empty() bool {
	return p.outcome.Empty()
}

// Len returns the number of criteria
func (p *Presenter) Len() int {
	return len(p.expanded)
}

// Item returns the criterion at i
func (p *Presenter) Item(i int) (analysis.CriterionResult, bool) {
	if i < 0 || i >= p.outcome.Len() {
		return analysis.CriterionResult{}, false
	}
	return p.outcome.Criteria[i], true
}

// ToggleOne flips the expansion of item i only. Out of range is ignored.
func (p *Presenter) ToggleOne(i int) {
	if i < 0 || i >= len(p.expanded) {
		return
	}
	p.expanded[i] = !p.expanded[i]
}

// ToggleAll flips the bulk flag and applies it to every item
func (p *Presenter) ToggleAll() {
	p.allExpanded = !p.allExpanded
	for i := range p.expanded {
		p.expanded[i] = p.allExpanded
	}
}

// Expanded reports whether item i shows its reason
func (p *Presenter) Expanded(i int) bool {
	if i < 0 || i >= len(p.expanded) {
		return false
	}
	return p.expanded[i]
}

// AllExpanded returns the bulk flag. It is not recomputed from the items:
// after a ToggleAll, individual toggles leave it unchanged.
func (p *Presenter) AllExpanded() bool {
	return p.allExpanded
}

// ToggleAllLabel returns the label of the bulk control
func (p *Presenter) ToggleAllLabel() string {
	if p.allExpanded {
		return CollapseAllLabel
	}
	return ExpandAllLabel
}

// Verdict returns the display treatment of item i
func (p *Presenter) Verdict(i int) Verdict {
	item, ok := p.Item(i)
	if !ok {
		return Negative
	}
	return VerdictOf(item)
}
