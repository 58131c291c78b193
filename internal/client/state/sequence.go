package state

import (
	"context"
	"sync/atomic"
	"time"
)

// Sequence hands out increasing tickets. Only the latest ticket is current;
// a delayed operation whose ticket went stale must drop its result.
type Sequence struct {
	n atomic.Uint64
}

func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

func (s *Sequence) IsCurrent(ticket uint64) bool {
	return s.n.Load() == ticket
}

// Sleep waits for d or until ctx is done, whichever comes first.
// A non-positive d only checks ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
