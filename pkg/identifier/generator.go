// Package identifier produces primary-key tokens for new entities.
package identifier

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces unique, lexicographically sortable string identifiers.
type Generator interface {
	NewID() string
}

// ULIDGenerator generates ULIDs with monotonic ordering within the
// process. Tokens generated later sort after tokens generated earlier,
// even within the same millisecond.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates a new ULID generator
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewID returns a fresh 26-character ULID. Safe for concurrent use.
func (g *ULIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
