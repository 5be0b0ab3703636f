package ui

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mjibson/go-dsp/fft"
)

const (
	numBands = 10
	fftSize  = 2048
)

// Unicode block elements for bar height (9 levels including space).
var barBlocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Frequency edges for the spectrum bands (Hz).
var bandEdges = [numBands + 1]float64{20, 100, 200, 400, 800, 1600, 3200, 6400, 12800, 16000, 20000}

// Visualizer turns drained raw samples into normalized spectrum bands.
type Visualizer struct {
	prev [numBands]float64
	sr   float64
	buf  []float64
}

// NewVisualizer creates a Visualizer for the given sample rate.
func NewVisualizer(sampleRate float64) *Visualizer {
	return &Visualizer{
		sr:  sampleRate,
		buf: make([]float64, fftSize),
	}
}

// Analyze runs an FFT over the samples and returns band levels in
// [0, 1]. Empty input decays the previous frame instead of snapping
// to zero.
func (v *Visualizer) Analyze(samples []float64) [numBands]float64 {
	var bands [numBands]float64
	if len(samples) == 0 {
		for b := 0; b < numBands; b++ {
			bands[b] = v.prev[b] * 0.8
			v.prev[b] = bands[b]
		}
		return bands
	}

	for i := range v.buf {
		v.buf[i] = 0
	}
	copy(v.buf, samples)

	// Hann window against spectral leakage.
	for i := 0; i < fftSize; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
		v.buf[i] *= w
	}

	spectrum := fft.FFTReal(v.buf)
	binHz := v.sr / float64(fftSize)

	for b := 0; b < numBands; b++ {
		loIdx := int(bandEdges[b] / binHz)
		hiIdx := int(bandEdges[b+1] / binHz)
		if loIdx < 1 {
			loIdx = 1
		}
		halfLen := len(spectrum) / 2
		if hiIdx >= halfLen {
			hiIdx = halfLen - 1
		}

		var sum float64
		count := 0
		for i := loIdx; i <= hiIdx; i++ {
			sum += cmplx.Abs(spectrum[i])
			count++
		}
		if count > 0 {
			sum /= float64(count)
		}

		if sum > 0 {
			bands[b] = (20*math.Log10(sum) + 10) / 50
		}
		bands[b] = clamp01(bands[b])

		// Fast attack, slow decay.
		if bands[b] > v.prev[b] {
			bands[b] = bands[b]*0.6 + v.prev[b]*0.4
		} else {
			bands[b] = bands[b]*0.25 + v.prev[b]*0.75
		}
		v.prev[b] = bands[b]
	}

	return bands
}

// Render converts band levels into a colored bar string of the given
// width.
func (v *Visualizer) Render(bands [numBands]float64, availWidth int) string {
	if availWidth < numBands {
		return ""
	}
	bw := (availWidth - (numBands - 1)) / numBands
	if bw < 1 {
		bw = 1
	}

	var sb strings.Builder
	for i, level := range bands {
		idx := int(level * float64(len(barBlocks)-1))
		if idx < 0 {
			idx = 0
		} else if idx > len(barBlocks)-1 {
			idx = len(barBlocks) - 1
		}
		block := barBlocks[idx]

		var style lipgloss.Style
		switch {
		case level > 0.75:
			style = gradHighStyle
		case level > 0.45:
			style = gradMidStyle
		default:
			style = gradLowStyle
		}

		sb.WriteString(style.Render(strings.Repeat(block, bw)))
		if i < numBands-1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
