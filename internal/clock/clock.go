package clock

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Clock is the source of wall-clock time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Context holds the authoritative "current instant" for a live display.
// The held instant only moves when Tick is called.
type Context struct {
	mu    sync.RWMutex
	clock Clock
	now   time.Time
}

func New(c Clock) *Context {
	if c == nil {
		c = SystemClock{}
	}
	return &Context{clock: c, now: c.Now()}
}

// Tick advances the held instant to the clock's current time.
func (c *Context) Tick() {
	now := c.clock.Now()
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *Context) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// ElapsedLabel describes how long ago observed was, relative to the held instant.
func (c *Context) ElapsedLabel(observed time.Time) string {
	return ElapsedLabel(c.Now(), observed)
}

// ElapsedSince describes how long ago observed was, relative to the clock's
// current time rather than the held instant.
func (c *Context) ElapsedSince(observed time.Time) string {
	return ElapsedLabel(c.clock.Now(), observed)
}

// ElapsedLabel returns "N minute(s) ago" using whole minutes rounded down.
// Observations in the future count as 0 minutes.
func ElapsedLabel(now, observed time.Time) string {
	minutes := int64(math.Floor(now.Sub(observed).Minutes()))
	if minutes < 0 {
		minutes = 0
	}
	if minutes == 1 {
		return "1 minute ago"
	}
	return fmt.Sprintf("%d minutes ago", minutes)
}
