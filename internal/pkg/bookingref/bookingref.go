// Package bookingref issues human-readable booking references of the
// form two uppercase letters followed by eight digits, e.g. "TG48215093".
//
// Uniqueness is ultimately enforced by the ledger's unique constraint;
// the generator's job is to make collisions rare enough that the bounded
// regeneration loop at persistence time almost never runs. Within a
// process, references never repeat until the digit space wraps: the
// suffix is a full-period sequence over 10^8 values started at a
// position drawn from crypto/rand.
package bookingref

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"regexp"
	"sync"
)

const (
	digitSpace = 100_000_000 // 8 decimal digits
	prefixLen  = 2
)

var Pattern = regexp.MustCompile(`^[A-Z]{2}\d{8}$`)

type Generator interface {
	Generate() string
}

type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	state  uint64
}

func NewSequenceGenerator(prefix string) (*SequenceGenerator, error) {
	if len(prefix) != prefixLen {
		return nil, fmt.Errorf("reference prefix must be exactly %d characters, got %q", prefixLen, prefix)
	}
	for _, r := range prefix {
		if r < 'A' || r > 'Z' {
			return nil, fmt.Errorf("reference prefix must be uppercase letters, got %q", prefix)
		}
	}

	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to seed reference generator: %w", err)
	}

	return &SequenceGenerator{
		prefix: prefix,
		state:  binary.BigEndian.Uint64(seed[:]) % digitSpace,
	}, nil
}

func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	g.state = (g.state + 1) % digitSpace
	n := g.state
	g.mu.Unlock()

	return fmt.Sprintf("%s%08d", g.prefix, n)
}
