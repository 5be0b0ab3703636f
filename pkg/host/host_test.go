package host

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/1hoookkk/fieldengine/pkg/engine"
)

func TestInterleaveLE(t *testing.T) {
	left := []float32{0.5, -1}
	right := []float32{0.25, 1}
	dst := make([]byte, 16)

	interleaveLE(dst, left, right)

	want := []float32{0.5, 0.25, -1, 1}
	for i, w := range want {
		bits := binary.LittleEndian.Uint32(dst[i*4:])
		if got := math.Float32frombits(bits); got != w {
			t.Errorf("sample %d: expected %f, got %f", i, w, got)
		}
	}
}

type silenceStreamer struct{}

func (silenceStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{0, 0}
	}
	return len(samples), true
}

func (silenceStreamer) Err() error { return nil }

func TestEffectStreamerChunking(t *testing.T) {
	proc := engine.NewProcessor()
	if err := proc.Initialize(44100, 64); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	proc.Parameters().Get(engine.ParamTestTone).SetBool(true)

	e := NewEffectStreamer(proc, silenceStreamer{}, 64)

	// An awkward length forces a partial final chunk.
	samples := make([][2]float64, 150)
	n, ok := e.Stream(samples)
	if n != 150 || !ok {
		t.Fatalf("Stream returned %d, %v", n, ok)
	}

	// The test tone replaces the silent input, so output is nonzero.
	var energy float64
	for _, s := range samples {
		energy += s[0]*s[0] + s[1]*s[1]
	}
	if energy == 0 {
		t.Error("expected tone energy in processed output")
	}
}

func TestEffectStreamerPassesUpstreamLength(t *testing.T) {
	proc := engine.NewProcessor()
	if err := proc.Initialize(44100, 32); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	e := NewEffectStreamer(proc, silenceStreamer{}, 32)
	samples := make([][2]float64, 32)
	if n, ok := e.Stream(samples); n != 32 || !ok {
		t.Fatalf("Stream returned %d, %v", n, ok)
	}
}
