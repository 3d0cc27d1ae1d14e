package billboard

import (
	"sync"
	"time"
)

// DefaultCooldown is the minimum gap between accepted submissions.
const DefaultCooldown = 5 * time.Second

// Cooldown rejects repeat submissions from the same key within a window.
// Only accepted submissions start the window.
type Cooldown struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

// NewCooldown returns a cooldown with window; non-positive uses DefaultCooldown.
func NewCooldown(window time.Duration) *Cooldown {
	if window <= 0 {
		window = DefaultCooldown
	}
	return &Cooldown{window: window, now: time.Now, last: make(map[string]time.Time)}
}

// WithClock replaces the time source.
func (c *Cooldown) WithClock(now func() time.Time) *Cooldown {
	c.now = now
	return c
}

// Check returns ErrCooldown when key submitted within the window.
func (c *Cooldown) Check(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if last, ok := c.last[key]; ok && c.now().Sub(last) < c.window {
		return ErrCooldown
	}
	return nil
}

// Mark records an accepted submission for key and forgets stale keys.
func (c *Cooldown) Mark(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markLocked(key)
}

// Reserve checks and marks key in one step, so concurrent submissions from
// the same key cannot both pass. Calling release undoes the reservation when
// the submission is not accepted after all; it is safe to call more than once.
func (c *Cooldown) Reserve(key string) (release func(), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, hadPrev := c.last[key]
	if hadPrev && c.now().Sub(prev) < c.window {
		return nil, ErrCooldown
	}
	reserved := c.markLocked(key)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if cur, ok := c.last[key]; !ok || !cur.Equal(reserved) {
				return
			}
			if hadPrev {
				c.last[key] = prev
			} else {
				delete(c.last, key)
			}
		})
	}, nil
}

func (c *Cooldown) markLocked(key string) time.Time {
	now := c.now()
	for k, t := range c.last {
		if now.Sub(t) >= c.window {
			delete(c.last, k)
		}
	}
	c.last[key] = now
	return now
}
