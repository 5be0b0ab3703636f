package telemetry

import (
	"sync/atomic"
)

// SampleFIFO is a bounded single-producer/single-consumer queue of raw
// samples. The producer reserves free slots, fills them, and commits;
// the consumer mirrors that on the read side. Neither side ever waits:
// when the queue is full the producer writes only what fits and drops
// the rest, and when it is empty the consumer's poll is a no-op.
//
// Positions are free-running uint64 counters masked into the storage,
// so the full/empty distinction never needs a wasted slot. Only the
// producer advances writePos and only the consumer advances readPos,
// which is what makes the atomics sufficient without any lock.
type SampleFIFO struct {
	data     []float32
	mask     uint64
	writePos uint64 // advanced only by CommitWrite (producer)
	readPos  uint64 // advanced only by CommitRead (consumer)

	// Overflow/underflow are not errors (data loss is preferred over
	// missing the deadline) but they are counted for observability.
	dropped uint64
}

// NewSampleFIFO creates a queue holding at least capacity samples,
// rounded up to the next power of two for cheap index masking.
func NewSampleFIFO(capacity int) *SampleFIFO {
	if capacity < 1 {
		capacity = 1
	}
	size := nextPowerOfTwo(uint32(capacity))
	return &SampleFIFO{
		data: make([]float32, size),
		mask: uint64(size - 1),
	}
}

// Capacity returns the number of slots in the queue.
func (f *SampleFIFO) Capacity() int {
	return len(f.data)
}

// CanWrite reports how many slots are currently free. Producer-side.
func (f *SampleFIFO) CanWrite() int {
	used := atomic.LoadUint64(&f.writePos) - atomic.LoadUint64(&f.readPos)
	return len(f.data) - int(used)
}

// CanRead reports how many committed samples are available. Consumer-side.
func (f *SampleFIFO) CanRead() int {
	return int(atomic.LoadUint64(&f.writePos) - atomic.LoadUint64(&f.readPos))
}

// ReserveWrite returns up to n free slots as two contiguous regions
// (the second is non-empty only when the reservation wraps the end of
// the storage). The producer fills the regions and then publishes them
// with CommitWrite. Never blocks; the regions may cover fewer than n
// slots, including zero.
func (f *SampleFIFO) ReserveWrite(n int) (first, second []float32) {
	writePos := atomic.LoadUint64(&f.writePos)
	free := len(f.data) - int(writePos-atomic.LoadUint64(&f.readPos))
	if n > free {
		n = free
	}
	if n <= 0 {
		return nil, nil
	}
	return f.regions(writePos, n)
}

// CommitWrite publishes k samples previously filled via ReserveWrite.
func (f *SampleFIFO) CommitWrite(k int) {
	if k > 0 {
		atomic.AddUint64(&f.writePos, uint64(k))
	}
}

// ReserveRead returns up to n committed samples as two contiguous
// regions. The consumer copies out of the regions and then releases
// them with CommitRead. Never blocks.
func (f *SampleFIFO) ReserveRead(n int) (first, second []float32) {
	readPos := atomic.LoadUint64(&f.readPos)
	avail := int(atomic.LoadUint64(&f.writePos) - readPos)
	if n > avail {
		n = avail
	}
	if n <= 0 {
		return nil, nil
	}
	return f.regions(readPos, n)
}

// CommitRead releases k samples previously obtained via ReserveRead.
func (f *SampleFIFO) CommitRead(k int) {
	if k > 0 {
		atomic.AddUint64(&f.readPos, uint64(k))
	}
}

// Write copies as much of src as fits and returns the number written.
// Samples that do not fit are dropped, never waited for.
func (f *SampleFIFO) Write(src []float32) int {
	first, second := f.ReserveWrite(len(src))
	n := copy(first, src)
	n += copy(second, src[n:])
	f.CommitWrite(n)
	if n < len(src) {
		atomic.AddUint64(&f.dropped, uint64(len(src)-n))
	}
	return n
}

// Read copies up to len(dst) available samples into dst and returns
// the number copied. Returns 0 immediately when nothing is available.
func (f *SampleFIFO) Read(dst []float32) int {
	first, second := f.ReserveRead(len(dst))
	n := copy(dst, first)
	n += copy(dst[n:], second)
	f.CommitRead(n)
	return n
}

// Dropped returns the total number of samples discarded because the
// queue was full at write time.
func (f *SampleFIFO) Dropped() uint64 {
	return atomic.LoadUint64(&f.dropped)
}

// regions slices the storage into the one or two contiguous runs that
// cover n slots starting at the masked position pos.
func (f *SampleFIFO) regions(pos uint64, n int) (first, second []float32) {
	start := int(pos & f.mask)
	if start+n <= len(f.data) {
		return f.data[start : start+n], nil
	}
	split := len(f.data) - start
	return f.data[start:], f.data[:n-split]
}

// nextPowerOfTwo rounds up to the next power of 2.
func nextPowerOfTwo(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}
