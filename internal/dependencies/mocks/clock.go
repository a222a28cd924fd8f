package mocks

import (
	"sync"
	"time"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/clock"
)

// MockClock is a settable Clock. Safe for use by concurrent handlers.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mocked instant
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// SetToday moves the clock to noon JST on d
func (c *MockClock) SetToday(d civiltime.Date) {
	c.Set(d.Start().Add(12 * time.Hour))
}
