// Package envelope provides level followers that smooth instantaneous
// signal magnitudes into stable estimates for metering and modulation.
package envelope

import (
	"math"
)

// Follower is an asymmetric one-pole envelope follower: the smoothing
// coefficient used while the input rises (attack) differs from the one
// used while it falls (release), giving the fast-rise/slow-fall
// response expected of a level meter.
//
// The expensive exp() calls happen only when the sample rate or a time
// constant changes, never per sample, so Process is safe on the audio
// thread. A Follower is owned by a single goroutine; only its derived
// level may cross a thread boundary.
type Follower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64
	depth      float32

	attackCoef  float32
	releaseCoef float32

	state  float32
	primed bool
}

// NewFollower creates a follower with the given time constants in
// milliseconds. Prepare must be called before processing.
func NewFollower(attackMs, releaseMs float64) *Follower {
	f := &Follower{
		attackMs:  attackMs,
		releaseMs: releaseMs,
		depth:     1.0,
	}
	f.Prepare(48000)
	return f
}

// Prepare sets the sample rate, recomputes the coefficients, and
// clears the state. Call on every host prepare.
func (f *Follower) Prepare(sampleRate float64) {
	f.sampleRate = sampleRate
	f.Reset()
	f.updateCoefficients()
}

// SetAttack sets the attack time constant in milliseconds.
func (f *Follower) SetAttack(ms float64) {
	f.attackMs = ms
	f.updateCoefficients()
}

// SetRelease sets the release time constant in milliseconds.
func (f *Follower) SetRelease(ms float64) {
	f.releaseMs = ms
	f.updateCoefficients()
}

// SetDepth scales the follower output; the result stays clamped to
// [0, 1].
func (f *Follower) SetDepth(depth float32) {
	f.depth = depth
}

// Reset clears the state. The next Process call re-primes the follower
// from its first input instead of ramping up from zero, which avoids a
// visible attack artifact after prepare.
func (f *Follower) Reset() {
	f.state = 0
	f.primed = false
}

// State returns the raw smoothed state before depth scaling.
func (f *Follower) State() float32 {
	return f.state
}

// Process feeds one sample through the follower and returns the
// current level estimate in [0, 1]. Deterministic given the same input
// stream and coefficients.
func (f *Follower) Process(input float32) float32 {
	rect := input
	if rect < 0 {
		rect = -rect
	}

	if !f.primed {
		f.state = rect
		f.primed = true
	} else {
		coef := f.releaseCoef
		if rect > f.state {
			coef = f.attackCoef
		}
		f.state += coef * (rect - f.state)
	}

	out := f.state * f.depth
	if out < 0 {
		return 0
	}
	if out > 1 {
		return 1
	}
	return out
}

// ProcessBlock runs the follower over a whole buffer and returns the
// level after the final sample.
func (f *Follower) ProcessBlock(buf []float32) float32 {
	var out float32
	for _, s := range buf {
		out = f.Process(s)
	}
	return out
}

// updateCoefficients derives the one-pole coefficients from the time
// constants: coef = 1 - exp(-1/(tau*sr)), so the update step is
// state += coef * (input - state).
func (f *Follower) updateCoefficients() {
	sr := f.sampleRate
	if sr <= 0 {
		sr = 48000
	}
	attackSec := math.Max(1e-6, f.attackMs*0.001)
	releaseSec := math.Max(1e-6, f.releaseMs*0.001)
	f.attackCoef = float32(1.0 - math.Exp(-1.0/(attackSec*sr)))
	f.releaseCoef = float32(1.0 - math.Exp(-1.0/(releaseSec*sr)))
}

// Coefficients returns the current attack and release coefficients,
// mainly for tests and diagnostics.
func (f *Follower) Coefficients() (attack, release float32) {
	return f.attackCoef, f.releaseCoef
}
