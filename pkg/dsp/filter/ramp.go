package filter

// ramp is a linear per-sample parameter ramp with a time-based length,
// used to move filter parameters over a fixed settle time instead of
// stepping them. It is a plain value type owned by the audio thread.
type ramp struct {
	current float32
	target  float32
	step    float32
	left    int
	samples int
}

// reset configures the ramp length from a sample rate and a settle
// time in seconds, keeping the current value.
func (r *ramp) reset(sampleRate float64, seconds float64) {
	r.samples = int(sampleRate * seconds)
	if r.samples < 1 {
		r.samples = 1
	}
	r.snapTo(r.current)
}

// setTarget starts a ramp toward v over the configured length.
func (r *ramp) setTarget(v float32) {
	if v == r.target {
		return
	}
	r.target = v
	r.step = (v - r.current) / float32(r.samples)
	r.left = r.samples
}

// snapTo jumps current and target to v with no ramp.
func (r *ramp) snapTo(v float32) {
	r.current = v
	r.target = v
	r.step = 0
	r.left = 0
}

// next advances one sample and returns the new current value.
func (r *ramp) next() float32 {
	if r.left > 0 {
		r.left--
		if r.left == 0 {
			r.current = r.target
		} else {
			r.current += r.step
		}
	}
	return r.current
}

// skip advances n samples at once, for parameters read once per block.
func (r *ramp) skip(n int) {
	if r.left <= 0 {
		return
	}
	if n >= r.left {
		r.current = r.target
		r.left = 0
		return
	}
	r.current += r.step * float32(n)
	r.left -= n
}

// smoothing reports whether the ramp is still moving.
func (r *ramp) smoothing() bool {
	return r.left > 0
}

// value returns the current value without advancing.
func (r *ramp) value() float32 {
	return r.current
}
