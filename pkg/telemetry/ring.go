package telemetry

import (
	"math"
	"sync/atomic"
)

// PeakRing is a fixed-capacity circular buffer of peak values with a
// monotonically advancing write cursor. The producer calls Write once
// per audio block; the consumer calls ReadOrdered at its own cadence.
//
// Each cell is an independently atomic float32, so individual values
// are never torn. The cursor is snapshotted once per read, which makes
// the ordering of an ordered read self-consistent even while the
// producer keeps writing: at worst the consumer sees one cell that is
// stale by a single cycle, which is accepted as a visualization
// artifact rather than a correctness violation.
type PeakRing struct {
	cells  []uint32 // float32 bit patterns
	cursor uint32   // index of the most recently written cell
}

// NewPeakRing creates a ring with the given fixed capacity. The storage
// is allocated once here and never resized.
func NewPeakRing(capacity int) *PeakRing {
	if capacity < 1 {
		capacity = 1
	}
	// Start the cursor on the last cell so the first Write lands on
	// cell zero.
	return &PeakRing{
		cells:  make([]uint32, capacity),
		cursor: uint32(capacity - 1),
	}
}

// Capacity returns the fixed cell count.
func (r *PeakRing) Capacity() int {
	return len(r.cells)
}

// Write stores v in the cell after the current cursor and then
// advances the cursor to it. This is the ring's only mutation and must
// be called from a single producer.
func (r *PeakRing) Write(v float32) {
	n := uint32(len(r.cells))
	idx := (atomic.LoadUint32(&r.cursor) + 1) % n
	atomic.StoreUint32(&r.cells[idx], math.Float32bits(v))
	atomic.StoreUint32(&r.cursor, idx)
}

// ReadOrdered copies the most recent min(len(dst), capacity) values
// into dst, oldest to newest, and returns the number copied. The
// cursor is read exactly once at the start, never mid-copy.
func (r *PeakRing) ReadOrdered(dst []float32) int {
	n := uint32(len(r.cells))
	count := uint32(len(dst))
	if count > n {
		count = n
	}
	cursor := atomic.LoadUint32(&r.cursor)
	// The oldest of the last count values sits count-1 cells behind
	// the cursor; walk forward from there.
	for i := uint32(0); i < count; i++ {
		idx := (cursor + n - count + 1 + i) % n
		dst[i] = math.Float32frombits(atomic.LoadUint32(&r.cells[idx]))
	}
	return int(count)
}
