package mocks

import (
	"fmt"

	"github.com/castello/castello-go/internal/dependencies/ids"
)

// MockIDs is a mock implementation of the id Generator for testing. It
// returns queued ids first and falls back to a deterministic sequence.
type MockIDs struct {
	Queue []string
	index int
	seq   int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs(queued ...string) *MockIDs {
	return &MockIDs{Queue: queued}
}

// New returns the next queued id, or "id-N" when the queue is exhausted
func (g *MockIDs) New() string {
	if g.index < len(g.Queue) {
		id := g.Queue[g.index]
		g.index++
		return id
	}
	g.seq++
	return fmt.Sprintf("id-%d", g.seq)
}
