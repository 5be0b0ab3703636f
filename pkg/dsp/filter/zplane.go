package filter

import (
	"math"
	"math/cmplx"
)

const (
	// NumSections is the number of pole pairs (and biquad stages) in
	// the cascade.
	NumSections = 6

	// MaxPoleRadius is the hardware pole radius limit; anything closer
	// to the unit circle risks instability with float32 state.
	MaxPoleRadius = 0.9950

	// MinPoleRadius bounds degenerate shapes from collapsing a section
	// into a near-allpass.
	MinPoleRadius = 0.10

	// ReferenceRate is the sample rate the shape tables were measured
	// at; poles are remapped from here to the session rate.
	ReferenceRate = 48000.0

	// Locked character defaults measured from the original units.
	AuthenticIntensity  = 0.4
	AuthenticDrive      = 0.2
	AuthenticSaturation = 0.2
)

// PolePair is one complex-conjugate pole in polar form.
type PolePair struct {
	R     float32
	Theta float32
}

// wrapAngle folds an angle into (-pi, pi].
func wrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// interpolatePole blends two poles at position t in [0, 1]. The radius
// moves in log space (geodesic), which tracks the original morph
// behavior better than linear blending; the angle takes the shortest
// path.
func interpolatePole(a, b PolePair, t float32) PolePair {
	lnA := math.Log(math.Max(1e-9, float64(a.R)))
	lnB := math.Log(math.Max(1e-9, float64(b.R)))
	r := float32(math.Exp((1-float64(t))*lnA + float64(t)*lnB))

	d := wrapAngle(b.Theta - a.Theta)
	return PolePair{R: r, Theta: a.Theta + t*d}
}

// remapPole moves a pole measured at the 48 kHz reference to the
// target sample rate through an inverse-then-forward bilinear
// transform, which warps frequencies properly instead of just scaling
// theta.
func remapPole(p PolePair, targetRate float64) PolePair {
	// Within a fraction of a hertz of the reference the remap is an
	// identity; skip the complex math.
	if math.Abs(targetRate-ReferenceRate) < 0.1 {
		return p
	}
	if targetRate < 1e3 {
		return p
	}

	r := math.Min(math.Max(float64(p.R), 0), 0.999999)
	z48 := cmplx.Rect(r, float64(p.Theta))

	denom := z48 + 1
	if cmplx.Abs(denom) < 1e-12 {
		// Singularity at z = -1; valid shapes never get here.
		return p
	}

	// z@48k -> s -> z@target.
	s := complex(2*ReferenceRate, 0) * (z48 - 1) / denom

	fwdDenom := complex(2*targetRate, 0) - s
	if cmplx.Abs(fwdDenom) < 1e-12 {
		return p
	}
	zNew := (complex(2*targetRate, 0) + s) / fwdDenom

	return PolePair{
		R:     float32(math.Min(cmplx.Abs(zNew), 0.999999)),
		Theta: float32(cmplx.Phase(zNew)),
	}
}

// poleCoefficients converts a pole pair into normalized biquad
// coefficients. Zeros sit at 90% of the pole radius to control the
// resonance, and the numerator is normalized by its coefficient sum to
// keep section gain bounded.
func poleCoefficients(p PolePair) (b0, b1, b2, a1, a2 float32) {
	a1 = -2 * p.R * float32(math.Cos(float64(p.Theta)))
	a2 = p.R * p.R

	rz := 0.9 * p.R
	if rz > 0.999 {
		rz = 0.999
	}
	if rz < 0 {
		rz = 0
	}
	c := float32(math.Cos(float64(p.Theta)))
	b0 = 1
	b1 = -2 * rz * c
	b2 = rz * rz

	sum := float32(math.Abs(float64(b0))) + float32(math.Abs(float64(b1))) + float32(math.Abs(float64(b2)))
	if sum < 0.25 {
		sum = 0.25
	}
	norm := 1 / sum
	return b0 * norm, b1 * norm, b2 * norm, a1, a2
}

// ZPlane is the morphing filter: two pole shapes, a morph position
// that interpolates between them, and a stereo pair of saturated
// biquad cascades realizing the interpolated poles. Parameter changes
// ramp over a settle time; coefficients are recomputed once per block
// and only while a ramp is active.
type ZPlane struct {
	sampleRate float64

	cascadeL Cascade
	cascadeR Cascade

	polesA [NumSections]PolePair
	polesB [NumSections]PolePair

	lastPoles [NumSections]PolePair

	morph     ramp
	intensity ramp
	drive     ramp
	mix       ramp

	lastMorph     float32
	lastIntensity float32
}

// NewZPlane creates a filter locked to the vowel shape pair with the
// measured character defaults.
func NewZPlane() *ZPlane {
	z := &ZPlane{sampleRate: ReferenceRate}
	z.SetShapePair(VowelA, VowelB)
	z.morph.snapTo(0.5)
	z.intensity.snapTo(AuthenticIntensity)
	z.drive.snapTo(AuthenticDrive)
	z.mix.snapTo(1.0)
	z.SetSectionSaturation(AuthenticSaturation)
	return z
}

// Prepare sets the session sample rate, clears filter state, and
// resizes the parameter ramps. Must be called before processing and on
// every rate change.
func (z *ZPlane) Prepare(sampleRate float64) {
	z.sampleRate = sampleRate
	z.cascadeL.Reset()
	z.cascadeR.Reset()
	z.morph.reset(sampleRate, 0.02)
	z.intensity.reset(sampleRate, 0.02)
	z.drive.reset(sampleRate, 0.01)
	z.mix.reset(sampleRate, 0.02)
	// Force a coefficient rebuild on the first block.
	z.lastMorph = -1
	z.refreshCoefficients()
}

// SetShapePair installs the two morph endpoints.
func (z *ZPlane) SetShapePair(a, b Shape) {
	z.polesA = a.poles()
	z.polesB = b.poles()
}

// SetMorph sets the morph target position in [0, 1].
func (z *ZPlane) SetMorph(m float32) {
	z.morph.setTarget(clampUnit(m))
}

// SetIntensity sets the resonance intensity target in [0, 1].
func (z *ZPlane) SetIntensity(i float32) {
	z.intensity.setTarget(clampUnit(i))
}

// SetDrive sets the input drive target in [0, 1].
func (z *ZPlane) SetDrive(d float32) {
	z.drive.setTarget(clampUnit(d))
}

// SetMix sets the wet/dry mix target in [0, 1].
func (z *ZPlane) SetMix(m float32) {
	z.mix.setTarget(clampUnit(m))
}

// SetSectionSaturation sets the per-section saturation on both
// channels.
func (z *ZPlane) SetSectionSaturation(amount float32) {
	z.cascadeL.SetSaturation(amount)
	z.cascadeR.SetSaturation(amount)
}

// Reset clears the cascade state and recentres the morph.
func (z *ZPlane) Reset() {
	z.cascadeL.Reset()
	z.cascadeR.Reset()
	z.morph.snapTo(0.5)
}

// UpdateCoefficientsBlock advances the block-rate ramps by the block
// length and rebuilds the biquad coefficients if the morph or
// intensity moved. Call once per block before Process; skipping the
// rebuild while parameters are stable saves most of its cost.
func (z *ZPlane) UpdateCoefficientsBlock(blockSize int) {
	z.morph.skip(blockSize)
	z.intensity.skip(blockSize)

	if !z.morph.smoothing() && !z.intensity.smoothing() &&
		z.morph.value() == z.lastMorph && z.intensity.value() == z.lastIntensity {
		return
	}
	z.refreshCoefficients()
}

func (z *ZPlane) refreshCoefficients() {
	z.lastMorph = z.morph.value()
	z.lastIntensity = z.intensity.value()

	// Intensity scales the pole radius toward the hardware clamp:
	// sharper resonance at higher settings.
	boost := 1 + z.lastIntensity*0.06

	for i := 0; i < NumSections; i++ {
		p := interpolatePole(z.polesA[i], z.polesB[i], z.lastMorph)
		p = remapPole(p, z.sampleRate)

		p.R *= boost
		if p.R > MaxPoleRadius {
			p.R = MaxPoleRadius
		}
		if p.R < MinPoleRadius {
			p.R = MinPoleRadius
		}
		z.lastPoles[i] = p

		b0, b1, b2, a1, a2 := poleCoefficients(p)
		z.cascadeL.Section(i).SetCoefficients(b0, b1, b2, a1, a2)
		z.cascadeR.Section(i).SetCoefficients(b0, b1, b2, a1, a2)
	}
}

// LastPoles returns the poles realized by the most recent coefficient
// update, for visualization.
func (z *ZPlane) LastPoles() [NumSections]PolePair {
	return z.lastPoles
}

// Process filters a stereo block in place. Drive and mix ramp per
// sample; the mix is equal-power against the true dry input so the
// blend neither dips at 50% nor loses the dry tone to the drive stage.
func (z *ZPlane) Process(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		drive := z.drive.next()
		mix := z.mix.next()

		// 4x scaling gives about 12 dB of boost at full drive.
		driveGain := 1 + drive*4

		inL := left[i]
		inR := right[i]

		l := float32(math.Tanh(float64(inL * driveGain)))
		r := float32(math.Tanh(float64(inR * driveGain)))

		wetL := z.cascadeL.Process(l)
		wetR := z.cascadeR.Process(r)

		wetG := float32(math.Sqrt(float64(mix)))
		dryG := float32(math.Sqrt(float64(1 - mix)))
		left[i] = wetL*wetG + inL*dryG
		right[i] = wetR*wetG + inR*dryG
	}
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
