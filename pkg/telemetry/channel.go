package telemetry

import (
	"math"
	"sync/atomic"
)

// NumPolePairs is the number of (radius, angle) pairs in a pole
// snapshot, matching the six filter sections of the processing engine.
const NumPolePairs = 6

// PolePair is one filter pole in polar form, published for
// visualization only.
type PolePair struct {
	R     float32
	Theta float32
}

// Channel aggregates every value the audio thread shares with the UI:
// the smoothed output level, the current pole snapshot, the waveform
// peak ring, and the raw sample staging queue. One audio goroutine
// calls the publish methods; one consumer goroutine calls the read
// methods. Nothing here locks or allocates after construction.
//
// The twelve pole scalars are individually consistent but are not one
// atomic unit: a reader may observe radius and angle of a pair from
// two adjacent blocks. Snapshot-wide consistency would need a lock and
// is deliberately not offered.
type Channel struct {
	level uint32
	poles [2 * NumPolePairs]uint32

	ring *PeakRing
	fifo *SampleFIFO
}

// NewChannel creates a channel whose ring and staging queue have the
// given fixed capacities. All storage is owned by the channel from
// here to teardown; nothing is reallocated while either side may be
// running.
func NewChannel(ringCapacity, fifoCapacity int) *Channel {
	return &Channel{
		ring: NewPeakRing(ringCapacity),
		fifo: NewSampleFIFO(fifoCapacity),
	}
}

// PublishLevel stores the latest level measurement. Producer-side,
// once per block; the previous value is simply overwritten.
func (c *Channel) PublishLevel(v float32) {
	atomic.StoreUint32(&c.level, math.Float32bits(v))
}

// Level returns the most recent level measurement in [0, 1].
func (c *Channel) Level() float32 {
	return math.Float32frombits(atomic.LoadUint32(&c.level))
}

// PublishPoles stores the current pole coordinates. Producer-side.
// Extra pairs beyond NumPolePairs are ignored.
func (c *Channel) PublishPoles(poles []PolePair) {
	n := len(poles)
	if n > NumPolePairs {
		n = NumPolePairs
	}
	for i := 0; i < n; i++ {
		atomic.StoreUint32(&c.poles[2*i], math.Float32bits(poles[i].R))
		atomic.StoreUint32(&c.poles[2*i+1], math.Float32bits(poles[i].Theta))
	}
}

// PoleSnapshot returns the latest published pole coordinates.
func (c *Channel) PoleSnapshot() [NumPolePairs]PolePair {
	var out [NumPolePairs]PolePair
	for i := 0; i < NumPolePairs; i++ {
		out[i].R = math.Float32frombits(atomic.LoadUint32(&c.poles[2*i]))
		out[i].Theta = math.Float32frombits(atomic.LoadUint32(&c.poles[2*i+1]))
	}
	return out
}

// WritePeak appends one peak value to the waveform ring. Producer-side,
// once per block.
func (c *Channel) WritePeak(v float32) {
	c.ring.Write(v)
}

// WaveformPeaks copies the most recent peaks into dst, oldest to
// newest, and returns the number copied.
func (c *Channel) WaveformPeaks(dst []float32) int {
	return c.ring.ReadOrdered(dst)
}

// StageSamples offers raw samples to the staging queue, dropping
// whatever does not fit. Returns the number accepted.
func (c *Channel) StageSamples(src []float32) int {
	return c.fifo.Write(src)
}

// DrainSamples moves up to len(dst) staged samples into dst and
// returns the count; zero when nothing is staged.
func (c *Channel) DrainSamples(dst []float32) int {
	return c.fifo.Read(dst)
}

// DroppedSamples reports how many staged samples were discarded
// because the queue was full.
func (c *Channel) DroppedSamples() uint64 {
	return c.fifo.Dropped()
}

// RingCapacity returns the waveform ring's fixed cell count.
func (c *Channel) RingCapacity() int {
	return c.ring.Capacity()
}
