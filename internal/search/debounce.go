package search

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the pause after the last keystroke before searching.
const DefaultDebounce = 500 * time.Millisecond

// Outcome is delivered by a Debouncer once a term settles.
type Outcome struct {
	Results Results
	Err     error
}

// Debouncer coalesces rapid term changes into one search. A superseded term
// never reaches the guide, and a search overtaken by a newer term has its
// result dropped and its context cancelled.
type Debouncer struct {
	guide   *Guide
	delay   time.Duration
	deliver func(Outcome)

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer calls deliver with each settled outcome. A non-positive delay
// uses DefaultDebounce.
func NewDebouncer(guide *Guide, delay time.Duration, deliver func(Outcome)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{guide: guide, delay: delay, deliver: deliver}
}

// Submit schedules a search for term, replacing anything pending.
func (d *Debouncer) Submit(ctx context.Context, term, category string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	gen := d.gen
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() {
		defer cancel()
		res, err := d.guide.Search(runCtx, term, category)
		d.mu.Lock()
		current := gen == d.gen
		d.mu.Unlock()
		if current {
			d.deliver(Outcome{Results: res, Err: err})
		}
	})
}

// Stop cancels pending and in-flight work.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
