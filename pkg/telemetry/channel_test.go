package telemetry

import (
	"sync"
	"testing"
)

func TestChannelLevel(t *testing.T) {
	ch := NewChannel(60, 512)

	if ch.Level() != 0 {
		t.Errorf("expected zero initial level, got %f", ch.Level())
	}

	ch.PublishLevel(0.42)
	if ch.Level() != 0.42 {
		t.Errorf("expected 0.42, got %f", ch.Level())
	}

	// Only the latest value is retained.
	ch.PublishLevel(0.1)
	ch.PublishLevel(0.9)
	if ch.Level() != 0.9 {
		t.Errorf("expected latest value 0.9, got %f", ch.Level())
	}
}

func TestChannelPoleSnapshot(t *testing.T) {
	ch := NewChannel(60, 512)

	poles := make([]PolePair, NumPolePairs)
	for i := range poles {
		poles[i] = PolePair{R: 0.9 + float32(i)*0.01, Theta: float32(i) * 0.1}
	}
	ch.PublishPoles(poles)

	snap := ch.PoleSnapshot()
	for i, p := range poles {
		if snap[i] != p {
			t.Errorf("pole %d: expected %+v, got %+v", i, p, snap[i])
		}
	}
}

func TestChannelWaveformPath(t *testing.T) {
	ch := NewChannel(4, 64)

	for _, v := range []float32{0.1, 0.2, 0.3, 0.4, 0.5} {
		ch.WritePeak(v)
	}

	dst := make([]float32, 4)
	n := ch.WaveformPeaks(dst)
	if n != 4 {
		t.Fatalf("expected 4 peaks, got %d", n)
	}
	expected := []float32{0.2, 0.3, 0.4, 0.5}
	for i, want := range expected {
		if dst[i] != want {
			t.Errorf("peak %d: expected %f, got %f", i, want, dst[i])
		}
	}

	// A second read with no intervening write returns the same frame.
	again := make([]float32, 4)
	ch.WaveformPeaks(again)
	for i := range dst {
		if dst[i] != again[i] {
			t.Errorf("peak %d changed between reads: %f vs %f", i, dst[i], again[i])
		}
	}
}

func TestChannelSamplePath(t *testing.T) {
	ch := NewChannel(60, 8)

	staged := ch.StageSamples([]float32{1, 2, 3, 4, 5})
	if staged != 5 {
		t.Fatalf("expected 5 staged, got %d", staged)
	}

	dst := make([]float32, 8)
	n := ch.DrainSamples(dst)
	if n != 5 {
		t.Errorf("expected 5 drained, got %d", n)
	}
	for i := 0; i < n; i++ {
		if dst[i] != float32(i+1) {
			t.Errorf("sample %d: expected %d, got %f", i, i+1, dst[i])
		}
	}

	// Drained means gone.
	if n := ch.DrainSamples(dst); n != 0 {
		t.Errorf("expected empty drain, got %d", n)
	}
}

func TestChannelConcurrentPublish(t *testing.T) {
	// Stress the scalar cells from both sides; reads must only ever
	// observe values that were actually published.
	ch := NewChannel(60, 512)
	const rounds = 20000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		poles := make([]PolePair, NumPolePairs)
		for i := 0; i < rounds; i++ {
			ch.PublishLevel(0.5)
			for j := range poles {
				poles[j] = PolePair{R: 0.25, Theta: 2.0}
			}
			ch.PublishPoles(poles)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < rounds/10; i++ {
			if lv := ch.Level(); lv != 0 && lv != 0.5 {
				t.Errorf("torn level: %f", lv)
				return
			}
			snap := ch.PoleSnapshot()
			for _, p := range snap {
				if p.R != 0 && p.R != 0.25 {
					t.Errorf("torn pole radius: %f", p.R)
					return
				}
				if p.Theta != 0 && p.Theta != 2.0 {
					t.Errorf("torn pole angle: %f", p.Theta)
					return
				}
			}
		}
	}()

	wg.Wait()
}
