package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs generates "<prefix>-1", "<prefix>-2", ... forever.
//
// Unlike store.FixedGenerator, which returns a fixed list and panics when it
// runs out, SequenceIDs suits runs whose game count is not known up front.
//
// Thread-safety: SequenceIDs is safe for concurrent use.
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDs creates a generator. An empty prefix defaults to "game".
func NewSequenceIDs(prefix string) *SequenceIDs {
	if prefix == "" {
		prefix = "game"
	}
	return &SequenceIDs{prefix: prefix}
}

// Generate returns the next ID.
//
// Implements store.IDGenerator.
func (g *SequenceIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
