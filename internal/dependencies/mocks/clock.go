package mocks

import (
	"time"

	"github.com/castello/castello-go/internal/dependencies/clock"
)

// MockClock is a manually driven Clock. Raid pacing is entirely
// deadline-based, so tests step time with Advance instead of sleeping.
type MockClock struct {
	CurrentTime time.Time
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock frozen at the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock by the given duration. Negative durations move it
// backwards.
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set jumps the clock to an absolute time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
