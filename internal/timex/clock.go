package timex

import (
	"sync"
	"time"
)

// IDGenerator hands out strictly increasing int64 identifiers derived from
// wall-clock milliseconds. Two calls within the same millisecond still get
// distinct values: the second one takes last+1.
//
// Safe for concurrent use.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator returns a generator reading time from now.
// A nil now defaults to time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns max(now in ms, previous+1).
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe raises the floor so that later ids are greater than id.
// Stores call it after hydrating persisted records.
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id > g.last {
		g.last = id
	}
}
