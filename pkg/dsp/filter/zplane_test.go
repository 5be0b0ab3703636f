package filter

import (
	"math"
	"testing"
)

func TestInterpolatePoleEndpoints(t *testing.T) {
	a := PolePair{R: 0.95, Theta: 0.1}
	b := PolePair{R: 0.88, Theta: 0.4}

	if got := interpolatePole(a, b, 0); !poleClose(got, a) {
		t.Errorf("t=0: expected %+v, got %+v", a, got)
	}
	if got := interpolatePole(a, b, 1); !poleClose(got, b) {
		t.Errorf("t=1: expected %+v, got %+v", b, got)
	}
}

func TestInterpolatePoleGeodesicRadius(t *testing.T) {
	a := PolePair{R: 0.4, Theta: 0}
	b := PolePair{R: 0.9, Theta: 0}

	mid := interpolatePole(a, b, 0.5)
	want := float32(math.Sqrt(0.4 * 0.9)) // geometric mean in log space
	if math.Abs(float64(mid.R-want)) > 1e-5 {
		t.Errorf("expected geodesic midpoint %f, got %f", want, mid.R)
	}
}

func TestInterpolatePoleShortestAngle(t *testing.T) {
	// Crossing the -pi/pi seam must take the short way around.
	a := PolePair{R: 0.9, Theta: 3.0}
	b := PolePair{R: 0.9, Theta: -3.0}

	mid := interpolatePole(a, b, 0.5)
	folded := wrapAngle(mid.Theta)
	if math.Abs(math.Abs(float64(folded))-math.Pi) > 1e-3 {
		t.Errorf("expected midpoint near the seam, got %f", folded)
	}
}

func TestRemapPoleIdentityAtReference(t *testing.T) {
	p := PolePair{R: 0.95, Theta: 0.3}
	if got := remapPole(p, ReferenceRate); got != p {
		t.Errorf("expected identity at reference rate, got %+v", got)
	}
}

func TestRemapPoleStaysStable(t *testing.T) {
	for _, rate := range []float64{44100, 88200, 96000, 192000} {
		for _, shape := range []Shape{VowelA, VowelB, BellA, BellB, LowA, LowB, SubA, SubB} {
			for _, p := range shape.poles() {
				got := remapPole(p, rate)
				if got.R < 0 || got.R >= 1 {
					t.Errorf("rate %.0f: remapped radius out of range: %f", rate, got.R)
				}
				if math.IsNaN(float64(got.Theta)) {
					t.Errorf("rate %.0f: NaN angle for pole %+v", rate, p)
				}
			}
		}
	}
}

func TestPoleCoefficientsStable(t *testing.T) {
	// For any pole inside the unit circle, |a2| = r^2 < 1 and the
	// normalized numerator never exceeds unit coefficient sum.
	for _, p := range VowelA.poles() {
		b0, b1, b2, _, a2 := poleCoefficients(p)
		if a2 >= 1 {
			t.Errorf("pole %+v: a2 %f not inside unit circle", p, a2)
		}
		sum := math.Abs(float64(b0)) + math.Abs(float64(b1)) + math.Abs(float64(b2))
		if sum > 1.0001 {
			t.Errorf("pole %+v: numerator sum %f exceeds 1", p, sum)
		}
	}
}

func TestSectionSaturationBounds(t *testing.T) {
	var s Section
	s.SetCoefficients(1, 0, 0, 0, 0)
	s.SetSaturation(1)

	for _, x := range []float32{-10, -1, 0, 1, 10} {
		y := s.Process(x)
		if y < -1 || y > 1 {
			t.Errorf("input %f: saturated output %f escaped [-1, 1]", x, y)
		}
	}
}

func TestSectionFlushesNonFinite(t *testing.T) {
	var s Section
	// A deliberately explosive denominator.
	s.SetCoefficients(1, 0, 0, -3, 3)
	for i := 0; i < 10000; i++ {
		y := s.Process(1)
		if math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
			t.Fatalf("iteration %d: non-finite output leaked: %f", i, y)
		}
	}
}

func TestZPlaneProcessFinite(t *testing.T) {
	z := NewZPlane()
	z.Prepare(44100)
	z.SetMorph(0.8)

	left := make([]float32, 512)
	right := make([]float32, 512)
	for i := range left {
		left[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
		right[i] = left[i]
	}

	z.UpdateCoefficientsBlock(len(left))
	z.Process(left, right)

	for i := range left {
		if !isFinite(left[i]) || !isFinite(right[i]) {
			t.Fatalf("sample %d: non-finite output", i)
		}
	}
}

func TestZPlanePoleClamp(t *testing.T) {
	z := NewZPlane()
	z.Prepare(48000)
	z.SetIntensity(1)

	// Let the intensity ramp settle fully.
	for i := 0; i < 100; i++ {
		z.UpdateCoefficientsBlock(512)
	}

	for i, p := range z.LastPoles() {
		if p.R > MaxPoleRadius {
			t.Errorf("pole %d: radius %f exceeds hardware clamp %f", i, p.R, MaxPoleRadius)
		}
		if p.R < MinPoleRadius {
			t.Errorf("pole %d: radius %f below floor %f", i, p.R, MinPoleRadius)
		}
	}
}

func TestZPlaneMorphSettles(t *testing.T) {
	z := NewZPlane()
	z.Prepare(48000)

	z.SetMorph(1)
	var before [NumSections]PolePair
	z.UpdateCoefficientsBlock(64)
	before = z.LastPoles()

	// 20 ms at 48k is 960 samples; after that the ramp is done and
	// further updates are a no-op.
	for i := 0; i < 32; i++ {
		z.UpdateCoefficientsBlock(64)
	}
	settled := z.LastPoles()
	z.UpdateCoefficientsBlock(64)
	if z.LastPoles() != settled {
		t.Error("poles changed after the morph ramp settled")
	}
	if before == settled {
		t.Error("expected poles to move during the morph ramp")
	}
}

func TestZPlaneMixEqualPower(t *testing.T) {
	z := NewZPlane()
	z.Prepare(48000)
	z.SetDrive(0)
	z.SetMix(0)

	// Let drive and mix ramps settle to their targets.
	settle := make([]float32, 4096)
	settleR := make([]float32, 4096)
	z.UpdateCoefficientsBlock(len(settle))
	z.Process(settle, settleR)

	// At mix 0 and no drive the output is the dry input untouched.
	left := []float32{0.5, -0.25, 0.125}
	right := []float32{0.5, -0.25, 0.125}
	z.Process(left, right)
	want := []float32{0.5, -0.25, 0.125}
	for i := range want {
		if math.Abs(float64(left[i]-want[i])) > 1e-4 {
			t.Errorf("sample %d: dry-through expected %f, got %f", i, want[i], left[i])
		}
	}
}

func TestShapePairLookup(t *testing.T) {
	if a, b := ShapePair("bell"); a != BellA || b != BellB {
		t.Error("bell lookup returned wrong pair")
	}
	if a, b := ShapePair("does-not-exist"); a != VowelA || b != VowelB {
		t.Error("unknown name should fall back to vowel pair")
	}
}

func poleClose(a, b PolePair) bool {
	return math.Abs(float64(a.R-b.R)) < 1e-5 && math.Abs(float64(a.Theta-b.Theta)) < 1e-5
}

func BenchmarkZPlaneProcess(b *testing.B) {
	z := NewZPlane()
	z.Prepare(48000)
	left := make([]float32, 512)
	right := make([]float32, 512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z.UpdateCoefficientsBlock(len(left))
		z.Process(left, right)
	}
}
