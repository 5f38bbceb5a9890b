// Package keygen generates short, collision-free identifiers for rich-text
// nodes. Uniqueness is scoped by a caller-owned Set: every identifier handed
// out is registered in the Set it was checked against.
package keygen

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// KeyLength is the number of hex characters in a generated identifier.
const KeyLength = 13

// Source produces the seed string that a candidate identifier is hashed from.
// Each call should return a fresh, high-entropy value.
type Source func() string

// DefaultSource combines the current time with a random UUID.
func DefaultSource() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10) + uuid.NewString()
}

// Generator hands out identifiers that are absent from a Set.
// A Generator holds no per-document state and may be shared across goroutines
// as long as its Source is safe for concurrent use. The Set is not.
type Generator struct {
	source Source
	length int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the seed source.
func WithSource(source Source) Option {
	return func(g *Generator) {
		if source != nil {
			g.source = source
		}
	}
}

// WithLength overrides the identifier length. Values outside 1..64 are ignored.
func WithLength(length int) Option {
	return func(g *Generator) {
		if length > 0 && length <= sha256.Size*2 {
			g.length = length
		}
	}
}

// New creates a Generator using DefaultSource and KeyLength unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{
		source: DefaultSource,
		length: KeyLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns an identifier not contained in set and registers it there.
// Collisions are retried with a fresh seed; there is no retry limit.
// A nil set behaves like an empty one and nothing is registered.
func (g *Generator) Next(set *Set) string {
	candidate := g.candidate()
	for set.Contains(candidate) {
		candidate = g.candidate()
	}
	set.Add(candidate)
	return candidate
}

func (g *Generator) candidate() string {
	return Hash(g.source(), g.length)
}

// Hash returns the identifier a Generator of the given length derives from seed.
func Hash(seed string, length int) string {
	sum := sha256.Sum256([]byte(seed))
	encoded := hex.EncodeToString(sum[:])
	if length <= 0 || length > len(encoded) {
		return encoded
	}
	return encoded[:length]
}
