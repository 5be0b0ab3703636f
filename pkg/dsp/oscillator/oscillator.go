// Package oscillator provides the diagnostic tone generator.
package oscillator

import "math"

// DefaultToneHz is the frequency of the built-in test tone.
const DefaultToneHz = 440.0

// DefaultToneAmplitude keeps the test tone well below full scale.
const DefaultToneAmplitude = 0.05

// Tone is a sine generator with a persistent phase accumulator. The
// phase survives across blocks so toggling the tone on and off never
// produces a discontinuity at block boundaries.
type Tone struct {
	sampleRate float64
	frequency  float64
	amplitude  float32
	phase      float64
	phaseInc   float64
}

// NewTone creates a test tone at the default frequency and amplitude.
func NewTone(sampleRate float64) *Tone {
	t := &Tone{
		sampleRate: sampleRate,
		frequency:  DefaultToneHz,
		amplitude:  DefaultToneAmplitude,
	}
	t.updateIncrement()
	return t
}

// Prepare updates the sample rate without resetting the phase.
func (t *Tone) Prepare(sampleRate float64) {
	t.sampleRate = sampleRate
	t.updateIncrement()
}

// SetFrequency sets the tone frequency in Hz.
func (t *Tone) SetFrequency(freq float64) {
	t.frequency = freq
	t.updateIncrement()
}

// SetAmplitude sets the linear output amplitude.
func (t *Tone) SetAmplitude(amp float32) {
	t.amplitude = amp
}

// Reset returns the phase to zero.
func (t *Tone) Reset() {
	t.phase = 0
}

func (t *Tone) updateIncrement() {
	t.phaseInc = 2 * math.Pi * t.frequency / t.sampleRate
}

// Next generates one sample and advances the phase.
func (t *Tone) Next() float32 {
	sample := t.amplitude * float32(math.Sin(t.phase))
	t.phase += t.phaseInc
	if t.phase >= 2*math.Pi {
		t.phase -= 2 * math.Pi
	}
	return sample
}

// Fill overwrites every channel with the tone. All channels receive
// the same sample so the tone stays centered.
func (t *Tone) Fill(channels ...[]float32) {
	if len(channels) == 0 {
		return
	}
	n := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	for i := 0; i < n; i++ {
		s := t.Next()
		for _, ch := range channels {
			ch[i] = s
		}
	}
}
