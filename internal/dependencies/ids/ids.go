package ids

import "github.com/google/uuid"

// Generator produces unique identifiers; mockable for deterministic tests
type Generator interface {
	New() string
}

// UUIDGenerator implements Generator with random UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// New returns a fresh random UUID string
func (g *UUIDGenerator) New() string {
	return uuid.New().String()
}
