package loading

import (
	"context"
	"time"
)

// Run mounts the presenter and drives it from wall-clock tickers until ctx is
// done. Both tickers are stopped on return whether or not the minimum was
// reached.
func (p *Presenter) Run(ctx context.Context) error {
	gen := p.Mount()
	defer p.Unmount()

	rotate := time.NewTicker(p.rotation)
	defer rotate.Stop()
	tick := time.NewTicker(p.tick)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rotate.C:
			p.Rotate(gen)
		case <-tick.C:
			p.Tick(gen)
		}
	}
}
