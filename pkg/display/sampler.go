// Package display polls the telemetry channel at a fixed rate and
// hands coherent frames to a renderer. It is the consumer side of the
// producer/consumer pair: read-only, never blocking the audio thread.
package display

import (
	"context"
	"time"

	"github.com/1hoookkk/fieldengine/pkg/telemetry"
)

// DefaultRefreshHz is the default polling rate.
const DefaultRefreshHz = 30

// Frame is one display snapshot. The fields are mutually consistent
// only in the eventual sense: each was the latest published value at
// the moment it was read.
type Frame struct {
	Level   float32
	Poles   [telemetry.NumPolePairs]telemetry.PolePair
	Peaks   []float32
	Samples []float32
	Dropped uint64
}

// Renderer consumes frames. Render is called from the sampler's
// goroutine at the tick rate.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Frame)

// Render calls f.
func (f RendererFunc) Render(frame Frame) { f(frame) }

// Sampler drives a Renderer from a telemetry channel on a fixed-rate
// tick. The frame buffers are allocated once and reused; Render must
// not retain them across calls.
type Sampler struct {
	tel      *telemetry.Channel
	interval time.Duration

	peaks   []float32
	samples []float32
}

// NewSampler creates a sampler polling at refreshHz.
func NewSampler(tel *telemetry.Channel, refreshHz int) *Sampler {
	if refreshHz <= 0 {
		refreshHz = DefaultRefreshHz
	}
	return &Sampler{
		tel:      tel,
		interval: time.Second / time.Duration(refreshHz),
		peaks:    make([]float32, tel.RingCapacity()),
		samples:  make([]float32, 4096),
	}
}

// Sample reads one frame. A missed or repeated value is benign; the
// next tick self-corrects.
func (s *Sampler) Sample() Frame {
	nPeaks := s.tel.WaveformPeaks(s.peaks)
	nSamples := s.tel.DrainSamples(s.samples)

	return Frame{
		Level:   s.tel.Level(),
		Poles:   s.tel.PoleSnapshot(),
		Peaks:   s.peaks[:nPeaks],
		Samples: s.samples[:nSamples],
		Dropped: s.tel.DroppedSamples(),
	}
}

// Run polls until the context is cancelled, rendering one frame per
// tick. Ticks that fall behind are dropped, not queued.
func (s *Sampler) Run(ctx context.Context, r Renderer) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Render(s.Sample())
		}
	}
}
