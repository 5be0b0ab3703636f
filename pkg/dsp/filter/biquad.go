// Package filter implements the Z-plane morphing filter: a cascade of
// resonant biquad sections whose pole pairs are interpolated between
// two stored shapes and remapped to the session sample rate.
package filter

import (
	"math"
)

// Section is one second-order IIR stage in Direct Form II Transposed
// with an optional per-section tanh saturation, the nonlinearity that
// gives the cascade its character.
type Section struct {
	b0, b1, b2 float32
	a1, a2     float32
	z1, z2     float32
	sat        float32
}

// SetCoefficients sets the numerator and denominator coefficients.
// a0 is assumed normalized to 1.
func (s *Section) SetCoefficients(b0, b1, b2, a1, a2 float32) {
	s.b0, s.b1, s.b2 = b0, b1, b2
	s.a1, s.a2 = a1, a2
}

// SetSaturation sets the per-section saturation amount in [0, 1].
func (s *Section) SetSaturation(amount float32) {
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	s.sat = amount
}

// Reset clears the delay state.
func (s *Section) Reset() {
	s.z1, s.z2 = 0, 0
}

// Process runs one sample through the section.
func (s *Section) Process(x float32) float32 {
	y := s.b0*x + s.z1
	s.z1 = s.b1*x - s.a1*y + s.z2
	s.z2 = s.b2*x - s.a2*y

	if s.sat > 0 {
		// 4x gain scaling puts soft clipping around ±0.25 at full
		// saturation.
		g := 1.0 + s.sat*4.0
		y = float32(math.Tanh(float64(y * g)))
	}

	// Flush NaN/Inf from extreme coefficients instead of letting it
	// propagate down the cascade.
	if !isFinite(y) {
		y = 0
	}
	return y
}

// Cascade is a fixed chain of sections processed in series.
type Cascade struct {
	sections [NumSections]Section
}

// Reset clears every section's delay state.
func (c *Cascade) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// SetSaturation applies the same saturation amount to every section.
func (c *Cascade) SetSaturation(amount float32) {
	for i := range c.sections {
		c.sections[i].SetSaturation(amount)
	}
}

// Process runs one sample through all sections in order.
func (c *Cascade) Process(x float32) float32 {
	for i := range c.sections {
		x = c.sections[i].Process(x)
	}
	return x
}

// Section returns a pointer to the i-th stage for coefficient updates.
func (c *Cascade) Section(i int) *Section {
	return &c.sections[i]
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
