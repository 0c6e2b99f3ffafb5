// Package poll provides a small cancellable ticker loop for background
// refresh work such as keeping the leaderboard cache warm.
package poll

import (
	"context"
	"sync"
	"time"
)

// Poller runs a function on a fixed interval until stopped. Start and Stop
// are idempotent; repeated Start calls never spawn a second loop, so a
// start/stop/start cycle cannot leave duplicate timers firing.
type Poller struct {
	interval time.Duration
	fn       func(context.Context)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a Poller that invokes fn every interval. The function also runs
// once immediately on Start so callers don't wait a full interval for the
// first refresh.
func New(interval time.Duration, fn func(context.Context)) *Poller {
	return &Poller{interval: interval, fn: fn}
}

// Start launches the polling loop. The loop exits when Stop is called or the
// given context is cancelled, whichever comes first.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.loop(runCtx)
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	p.fn(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fn(ctx)
		}
	}
}

// Stop cancels the loop and waits for the goroutine to exit. Calling Stop on
// a poller that never started, or twice, is safe.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
}
