package clock

import (
	"time"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
)

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the current JST calendar date according to c.
func Today(c Clock) civiltime.Date {
	return civiltime.DateOf(c.Now())
}
