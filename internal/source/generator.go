package source

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generator produces synthetic records on demand.
type Generator struct {
	next int64
	end  int64
	now  func() time.Time
}

// NewGenerator returns a generator that stops after limit records, or never
// when limit is zero.
func NewGenerator(limit int64) *Generator {
	return NewGeneratorFrom(0, limit)
}

// NewGeneratorFrom is like NewGenerator but numbers the first record start.
func NewGeneratorFrom(start, limit int64) *Generator {
	start = max(0, start)
	g := &Generator{next: start, now: time.Now}
	if limit > 0 {
		g.end = start + limit
	}
	return g
}

// LoadMore implements scroller.Loader.
func (g *Generator) LoadMore(_ context.Context, count int) ([]Record, error) {
	n := int64(count)
	if g.end > 0 {
		n = max(0, min(n, g.end-g.next))
	}
	records := make([]Record, 0, n)
	for range n {
		records = append(records, Record{
			Seq:       g.next,
			Body:      fmt.Sprintf("row %d · %s", g.next, uuid.NewString()),
			CreatedAt: g.now(),
		})
		g.next++
	}
	return records, nil
}

func (g *Generator) Close() error { return nil }
