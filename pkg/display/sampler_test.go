package display

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/1hoookkk/fieldengine/pkg/telemetry"
)

func TestSamplerSample(t *testing.T) {
	tel := telemetry.NewChannel(8, 64)
	tel.PublishLevel(0.4)
	tel.WritePeak(0.1)
	tel.WritePeak(0.2)
	tel.StageSamples([]float32{1, 2, 3})
	tel.PublishPoles([]telemetry.PolePair{{R: 0.9, Theta: 0.3}})

	s := NewSampler(tel, 30)
	frame := s.Sample()

	if frame.Level != 0.4 {
		t.Errorf("level: got %f", frame.Level)
	}
	if len(frame.Peaks) != 8 {
		t.Errorf("expected full ring read of 8, got %d", len(frame.Peaks))
	}
	if frame.Peaks[6] != 0.1 || frame.Peaks[7] != 0.2 {
		t.Errorf("peaks not ordered oldest to newest: %v", frame.Peaks)
	}
	if len(frame.Samples) != 3 || frame.Samples[0] != 1 {
		t.Errorf("unexpected drained samples: %v", frame.Samples)
	}
	if frame.Poles[0].R != 0.9 {
		t.Errorf("pole snapshot missing: %+v", frame.Poles[0])
	}

	// The drain consumed the queue; a second frame sees nothing new.
	if again := s.Sample(); len(again.Samples) != 0 {
		t.Errorf("expected empty drain, got %d samples", len(again.Samples))
	}
}

func TestSamplerRunTicksAndStops(t *testing.T) {
	tel := telemetry.NewChannel(8, 64)
	s := NewSampler(tel, 200)

	var frames atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx, RendererFunc(func(Frame) { frames.Add(1) }))
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if frames.Load() == 0 {
		t.Error("no frames rendered")
	}
}

func TestSamplerDefaultRate(t *testing.T) {
	tel := telemetry.NewChannel(8, 64)
	s := NewSampler(tel, 0)
	if s.interval != time.Second/DefaultRefreshHz {
		t.Errorf("expected default interval, got %v", s.interval)
	}
}
