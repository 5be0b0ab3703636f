package oscillator

import (
	"math"
	"testing"
)

func TestToneFrequency(t *testing.T) {
	const sr = 48000
	tone := NewTone(sr)
	tone.SetAmplitude(1)

	// Count zero crossings over one second of output. A 440 Hz sine
	// crosses zero 880 times.
	prev := tone.Next()
	crossings := 0
	for i := 1; i < sr; i++ {
		s := tone.Next()
		if (prev < 0 && s >= 0) || (prev >= 0 && s < 0) {
			crossings++
		}
		prev = s
	}
	if crossings < 878 || crossings > 882 {
		t.Errorf("expected ~880 zero crossings, got %d", crossings)
	}
}

func TestToneAmplitude(t *testing.T) {
	tone := NewTone(48000)
	var peak float32
	for i := 0; i < 48000; i++ {
		s := tone.Next()
		if s > peak {
			peak = s
		}
	}
	if math.Abs(float64(peak-DefaultToneAmplitude)) > 1e-3 {
		t.Errorf("expected peak near %f, got %f", DefaultToneAmplitude, peak)
	}
}

func TestTonePhasePersistsAcrossBlocks(t *testing.T) {
	contiguous := NewTone(48000)
	blocked := NewTone(48000)

	want := make([]float32, 1024)
	for i := range want {
		want[i] = contiguous.Next()
	}

	got := make([]float32, 0, 1024)
	buf := make([]float32, 128)
	for b := 0; b < 8; b++ {
		blocked.Fill(buf)
		got = append(got, buf...)
	}

	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("sample %d: block boundary broke phase continuity: %f != %f", i, want[i], got[i])
		}
	}
}

func TestToneFillStereo(t *testing.T) {
	tone := NewTone(48000)
	left := make([]float32, 64)
	right := make([]float32, 64)
	tone.Fill(left, right)
	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("sample %d: channels diverged", i)
		}
	}
}

func TestToneReset(t *testing.T) {
	tone := NewTone(48000)
	first := tone.Next()
	for i := 0; i < 100; i++ {
		tone.Next()
	}
	tone.Reset()
	if got := tone.Next(); got != first {
		t.Errorf("expected %f after reset, got %f", first, got)
	}
}
