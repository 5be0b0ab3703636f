package param

import (
	"math"
	"sync"
	"testing"
)

func TestParameterNormalization(t *testing.T) {
	p := New(1, "Gain").Range(-12, 12).Default(0).Unit("dB").Build()

	if got := p.GetValue(); got != 0.5 {
		t.Errorf("default should normalize to 0.5, got %f", got)
	}
	if got := p.GetPlainValue(); got != 0 {
		t.Errorf("default plain value should be 0, got %f", got)
	}

	p.SetPlainValue(6)
	if got := p.GetValue(); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("6 dB should normalize to 0.75, got %f", got)
	}

	p.SetPlainValue(100)
	if got := p.GetPlainValue(); got != 12 {
		t.Errorf("out-of-range plain value should clamp to 12, got %f", got)
	}
}

func TestParameterToggle(t *testing.T) {
	p := New(2, "Bypass").Toggle().Bypass().Build()

	if p.GetBool() {
		t.Error("toggle should default to off")
	}
	p.SetBool(true)
	if !p.GetBool() {
		t.Error("toggle should be on after SetBool(true)")
	}
	if p.Flags&IsBypass == 0 {
		t.Error("bypass flag missing")
	}
}

func TestParameterConcurrentAccess(t *testing.T) {
	p := New(3, "Mix").Range(0, 100).Default(100).Build()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			p.SetValue(float64(i%2) * 0.5)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			v := p.GetValue()
			if v != 0 && v != 0.5 && v != 1 {
				t.Errorf("torn read: %f", v)
				return
			}
		}
	}()
	wg.Wait()
}

func TestParameterFormatting(t *testing.T) {
	p := New(4, "Character").Range(0, 100).Default(50).Unit("%").
		Formatter(
			func(v float64) string { return "custom" },
			nil,
		).Build()

	if got := p.FormatValue(0.5); got != "custom" {
		t.Errorf("expected custom formatter output, got %q", got)
	}

	plain := New(5, "Plain").Range(0, 10).Build()
	if got := plain.FormatValue(0.5); got != "5.00" {
		t.Errorf("expected default formatting, got %q", got)
	}
}

func TestRegistryOrderAndDuplicates(t *testing.T) {
	r := NewRegistry()
	a := New(1, "A").Build()
	b := New(2, "B").Build()
	dup := New(1, "A again").Build()

	r.Add(a, b, dup)

	if r.Count() != 2 {
		t.Fatalf("expected 2 parameters, got %d", r.Count())
	}
	all := r.All()
	if all[0] != a || all[1] != b {
		t.Error("registration order not preserved")
	}
	if r.Get(1) != a {
		t.Error("duplicate registration replaced the original")
	}
	if r.Get(99) != nil {
		t.Error("unknown ID should return nil")
	}
}

func TestSmootherLinear(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 10)
	s.Reset(0)
	s.SetTarget(1)

	prev := 0.0
	for i := 0; i < 10; i++ {
		v := s.Next()
		if v <= prev {
			t.Fatalf("step %d: value %f did not increase", i, v)
		}
		prev = v
	}
	if s.Value() != 1 {
		t.Errorf("expected target reached, got %f", s.Value())
	}
	if s.IsSmoothing() {
		t.Error("smoothing should be complete")
	}
}

func TestSmootherExponentialConverges(t *testing.T) {
	s := NewSmoother(ExponentialSmoothing, 0.99)
	s.Reset(0)
	s.SetTarget(1)

	for i := 0; i < 10000 && s.IsSmoothing(); i++ {
		s.Next()
	}
	if s.Value() != 1 {
		t.Errorf("expected convergence to 1, got %f", s.Value())
	}
}

func TestSmootherSkip(t *testing.T) {
	a := NewSmoother(LinearSmoothing, 100)
	b := NewSmoother(LinearSmoothing, 100)
	a.Reset(0)
	b.Reset(0)
	a.SetTarget(1)
	b.SetTarget(1)

	for i := 0; i < 42; i++ {
		a.Next()
	}
	b.Skip(42)
	if a.Value() != b.Value() {
		t.Errorf("Skip diverged from Next: %f != %f", a.Value(), b.Value())
	}
}

func TestSmootherTimeConstant(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 0)
	s.SetTimeConstant(48000, 10)
	if s.rate != 480 {
		t.Errorf("10 ms at 48k should be 480 samples, got %f", s.rate)
	}
}
