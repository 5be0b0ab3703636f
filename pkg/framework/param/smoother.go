package param

import "math"

// SmoothingType selects the smoothing algorithm.
type SmoothingType int

const (
	// LinearSmoothing ramps in equal steps over a fixed sample count.
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing uses a one-pole filter toward the target.
	ExponentialSmoothing
)

// Smoother ramps a control value toward its target to prevent zipper
// noise. It belongs to the audio thread; targets arrive via SetTarget.
type Smoother struct {
	smoothingType SmoothingType
	current       float64
	target        float64
	rate          float64
	threshold     float64
	isSmoothing   bool

	// Step size for linear smoothing.
	step float64
}

// NewSmoother creates a smoother.
// rate: samples to target for linear, pole coefficient (0.9-0.999)
// for exponential.
func NewSmoother(smoothingType SmoothingType, rate float64) *Smoother {
	return &Smoother{
		smoothingType: smoothingType,
		rate:          rate,
		threshold:     0.0001,
	}
}

// SetTarget sets the value to ramp toward.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold {
		return
	}

	s.target = target
	s.isSmoothing = true

	if s.smoothingType == LinearSmoothing && s.rate > 0 {
		s.step = (target - s.current) / s.rate
	}
}

// Next returns the next smoothed value.
func (s *Smoother) Next() float64 {
	if !s.isSmoothing {
		return s.current
	}

	switch s.smoothingType {
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1.0 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.current = s.target
			s.isSmoothing = false
		}

	case LinearSmoothing:
		s.current += s.step
		if (s.step > 0 && s.current >= s.target) || (s.step < 0 && s.current <= s.target) {
			s.current = s.target
			s.isSmoothing = false
		}
	}

	return s.current
}

// Skip advances the smoother by n samples without producing values.
func (s *Smoother) Skip(n int) {
	for i := 0; i < n && s.isSmoothing; i++ {
		s.Next()
	}
}

// Value returns the current value without advancing.
func (s *Smoother) Value() float64 {
	return s.current
}

// IsSmoothing reports whether a ramp is still in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.isSmoothing
}

// Reset jumps directly to a value and cancels any ramp.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.isSmoothing = false
}

// SetRate updates the smoothing rate.
func (s *Smoother) SetRate(rate float64) {
	s.rate = rate
}

// SetTimeConstant derives the rate from a settle time in
// milliseconds at the given sample rate.
func (s *Smoother) SetTimeConstant(sampleRate, timeMs float64) {
	samples := sampleRate * timeMs / 1000.0
	if samples < 1 {
		samples = 1
	}
	if s.smoothingType == LinearSmoothing {
		s.rate = samples
	} else {
		// -60 dB settle in timeMs.
		s.rate = math.Exp(-6.908 / samples)
	}
}
