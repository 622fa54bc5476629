package mock

import (
	"sync"
	"time"
)

// Clock is a controllable clock for integration tests. Until SetCurrentTime
// is called it tracks the real clock; afterwards it reports the configured
// instant plus whatever real time has elapsed since.
type Clock struct {
	mu       sync.Mutex
	baseTime time.Time
	setAt    time.Time
	frozen   bool
}

func NewClock() *Clock {
	return &Clock{}
}

// SetCurrentTime pins the clock to the given instant.
func (c *Clock) SetCurrentTime(currentTime time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseTime = currentTime
	c.setAt = time.Now()
	c.frozen = true
}

// Reset returns the clock to real time.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = false
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.frozen {
		return time.Now().UTC()
	}
	return c.baseTime.Add(time.Since(c.setAt))
}
