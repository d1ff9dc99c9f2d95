package testkit

import (
	"sync/atomic"
	"testing"
)

// Counter counts calls made through a swapped function seam
type Counter struct{ n atomic.Int64 }

// Count returns the number of recorded calls
func (c *Counter) Count() int { return int(c.n.Load()) }

// Reset zeroes the counter
func (c *Counter) Reset() { c.n.Store(0) }

// CountCalls swaps a two-argument function seam for a wrapper that counts calls
// before delegating to the original. The seam is restored on cleanup
func CountCalls[A, B, R any](t *testing.T, target *func(A, B) R) *Counter {
	t.Helper()
	c := &Counter{}
	orig := *target
	Swap(t, target, func(a A, b B) R {
		c.n.Add(1)
		return orig(a, b)
	})
	return c
}
