package memory

import (
	"context"
	"fmt"
	"sync"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"
)

// SequenceGenerator issues codes from per-kind counters held in memory.
type SequenceGenerator struct {
	mu       sync.Mutex
	counters map[entities.DocumentKind]int64
}

var _ interfaces.ISequenceGenerator = (*SequenceGenerator)(nil)

// NewSequenceGenerator starts each kind after the given last-issued value.
// Kinds missing from last start at 1.
func NewSequenceGenerator(last map[entities.DocumentKind]int64) *SequenceGenerator {
	counters := make(map[entities.DocumentKind]int64, len(last))
	for k, v := range last {
		counters[k] = v
	}
	return &SequenceGenerator{counters: counters}
}

// NextCode increments the counter of kind. Counters never reset per period.
func (g *SequenceGenerator) NextCode(ctx context.Context, kind entities.DocumentKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !kind.Valid() {
		return "", fmt.Errorf("unknown document kind %q", kind)
	}
	g.mu.Lock()
	g.counters[kind]++
	n := g.counters[kind]
	g.mu.Unlock()
	return kind.FormatCode(n), nil
}
