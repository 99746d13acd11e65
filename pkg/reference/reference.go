// Package reference generates the unique references shared by a workflow
// entity and its ledger records.
package reference

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefix identifies the workflow a reference belongs to.
type Prefix string

const (
	Deposit    Prefix = "DEP"
	Withdrawal Prefix = "WDR"
	Transfer   Prefix = "TRF"
	Adjustment Prefix = "ADJ"
)

// Generator produces time-ordered references: <PREFIX><ULID>.
type Generator interface {
	Next(p Prefix) string
}

// ULIDGenerator is safe for concurrent use.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New returns a ULID-backed generator.
func New() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

func (g *ULIDGenerator) Next(p Prefix) string {
	g.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
	g.mu.Unlock()
	return string(p) + id.String()
}

// PrefixOf returns the workflow prefix of ref, or "" if it has none.
func PrefixOf(ref string) Prefix {
	for _, p := range []Prefix{Deposit, Withdrawal, Transfer, Adjustment} {
		if strings.HasPrefix(ref, string(p)) {
			return p
		}
	}
	return ""
}
