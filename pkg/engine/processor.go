// Package engine implements the audio effect: a Z-plane morphing
// filter driven by an envelope follower, publishing telemetry for the
// UI on every block.
package engine

import (
	"math"

	"github.com/1hoookkk/fieldengine/pkg/dsp/envelope"
	"github.com/1hoookkk/fieldengine/pkg/dsp/filter"
	"github.com/1hoookkk/fieldengine/pkg/dsp/oscillator"
	"github.com/1hoookkk/fieldengine/pkg/framework/bus"
	"github.com/1hoookkk/fieldengine/pkg/framework/debug"
	"github.com/1hoookkk/fieldengine/pkg/framework/param"
	"github.com/1hoookkk/fieldengine/pkg/framework/process"
	"github.com/1hoookkk/fieldengine/pkg/telemetry"
)

const (
	// Envelope times for the morph modulation.
	envAttackMs  = 0.489
	envReleaseMs = 80.0
	envDepth     = 0.75

	// UI envelope times for the level meter and delta bars.
	uiAttackSeconds  = 0.010
	uiReleaseSeconds = 0.150

	// Envelope contribution to morph.
	morphModScale = 0.2

	// DefaultWaveformBars is the peak ring capacity.
	DefaultWaveformBars = 32
	// DefaultSampleDepth is the raw sample staging capacity.
	DefaultSampleDepth = 512
)

// Processor is the per-block producer. It owns every cross-thread
// structure for its full lifetime. One goroutine calls ProcessAudio;
// the telemetry channel is the only surface other goroutines touch.
type Processor struct {
	params *param.Registry
	buses  *bus.Configuration
	tel    *telemetry.Channel

	zf   *filter.ZPlane
	env  *envelope.Follower
	tone *oscillator.Tone

	bypassSmooth *param.Smoother
	gainSmooth   *param.Smoother

	// Block-rate one-pole states for the UI.
	uiAttackCoef  float32
	uiReleaseCoef float32
	uiLevelState  float32
	deltaState    float32

	dry [][]float32

	sampleRate   float64
	maxBlockSize int
	active       bool

	log *debug.Logger
}

// NewProcessor creates the effect with its parameters at defaults.
func NewProcessor() *Processor {
	p := &Processor{
		params:       param.NewRegistry(),
		buses:        bus.NewStereoConfiguration(),
		tel:          telemetry.NewChannel(DefaultWaveformBars, DefaultSampleDepth),
		zf:           filter.NewZPlane(),
		env:          envelope.NewFollower(envAttackMs, envReleaseMs),
		bypassSmooth: param.NewSmoother(param.LinearSmoothing, 480),
		gainSmooth:   param.NewSmoother(param.ExponentialSmoothing, 0.999),
		log:          debug.Default(),
	}

	registerParams(p.params)

	// Shape pair and texture are fixed; morph and mix move at runtime.
	a, b := filter.ShapePair("vowel")
	p.zf.SetShapePair(a, b)
	p.zf.SetIntensity(filter.AuthenticIntensity)
	p.zf.SetDrive(filter.AuthenticDrive)
	p.zf.SetSectionSaturation(filter.AuthenticSaturation)

	p.env.SetDepth(envDepth)

	return p
}

// SetShapePair swaps the filter's morph endpoints. Call before
// activation; it is not safe mid-block.
func (p *Processor) SetShapePair(a, b filter.Shape) {
	p.zf.SetShapePair(a, b)
}

// Parameters returns the parameter registry.
func (p *Processor) Parameters() *param.Registry {
	return p.params
}

// Buses returns the bus configuration.
func (p *Processor) Buses() *bus.Configuration {
	return p.buses
}

// Telemetry returns the channel the UI reads from.
func (p *Processor) Telemetry() *telemetry.Channel {
	return p.tel
}

// SupportsLayout reports whether the requested channel layout is
// usable. Stereo in, stereo out only; anything else is rejected here,
// never mid-block.
func (p *Processor) SupportsLayout(inputs, outputs int) bool {
	return p.buses.SupportsLayout(inputs, outputs)
}

// Initialize prepares the processor for a sample rate and maximum
// block size. Everything the audio path touches is allocated here.
func (p *Processor) Initialize(sampleRate float64, maxBlockSize int) error {
	p.sampleRate = sampleRate
	p.maxBlockSize = maxBlockSize

	p.zf.Prepare(sampleRate)
	p.env.Prepare(sampleRate)

	if p.tone == nil {
		p.tone = oscillator.NewTone(sampleRate)
	} else {
		p.tone.Prepare(sampleRate)
	}

	sr := float32(sampleRate)
	p.uiAttackCoef = 1 - float32(math.Exp(float64(-1/(uiAttackSeconds*sr))))
	p.uiReleaseCoef = 1 - float32(math.Exp(float64(-1/(uiReleaseSeconds*sr))))
	p.uiLevelState = 0
	p.deltaState = 0

	// 10 ms bypass crossfade, 20 ms gain smoothing.
	p.bypassSmooth.SetTimeConstant(sampleRate, 10)
	p.gainSmooth.SetTimeConstant(sampleRate, 20)
	if p.params.Get(ParamBypass).GetBool() {
		p.bypassSmooth.Reset(0)
	} else {
		p.bypassSmooth.Reset(1)
	}
	p.gainSmooth.Reset(1)

	p.dry = make([][]float32, 2)
	for ch := range p.dry {
		p.dry[ch] = make([]float32, maxBlockSize)
	}

	p.log.Info("initialized: %.0f Hz, max block %d", sampleRate, maxBlockSize)
	return nil
}

// SetActive starts or stops processing. Deactivation resets all
// time-varying state so reactivation starts clean.
func (p *Processor) SetActive(active bool) error {
	if !active {
		p.Reset()
	}
	p.active = active
	return nil
}

// Reset clears filter, envelope, and smoothing state.
func (p *Processor) Reset() {
	p.zf.Reset()
	p.env.Reset()
	p.uiLevelState = 0
	p.deltaState = 0
}

// ProcessAudio runs one block. No allocation, no locks, no errors:
// degraded conditions inside the block fall back to benign behavior.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	numSamples := ctx.NumSamples()
	if numSamples == 0 || numSamples > p.maxBlockSize {
		return
	}
	if ctx.NumOutputChannels() < 2 {
		return
	}

	ctx.PassThrough()
	outL := ctx.Output[0]
	outR := ctx.Output[1]

	// Diagnostic tone replaces the input when enabled. The phase
	// accumulator persists across blocks.
	if ctx.ParamBool(ParamTestTone) {
		p.tone.Fill(outL[:numSamples], outR[:numSamples])
	}

	// Dry pre-copy for the wet/dry delta and the bypass crossfade.
	dryL := p.dry[0][:numSamples]
	dryR := p.dry[1][:numSamples]
	copy(dryL, outL)
	copy(dryR, outR)

	// One parameter read per block; values hold for the whole block.
	character := float32(ctx.ParamPlain(ParamCharacter))
	mixPct := float32(ctx.ParamPlain(ParamMix))
	outDb := ctx.ParamPlain(ParamGain)
	bypass := ctx.ParamBool(ParamBypass)
	effectOn := ctx.ParamBool(ParamEffectMode)

	if bypass {
		p.bypassSmooth.SetTarget(0)
	} else {
		p.bypassSmooth.SetTarget(1)
	}

	// Envelope follower runs on the left channel.
	var envValue float32
	for i := 0; i < numSamples; i++ {
		envValue = p.env.Process(outL[i])
	}

	// Character sets the base morph; the envelope adds up to 20%.
	baseMorph := character * 0.01
	modMorph := baseMorph + envValue*morphModScale
	if modMorph < 0 {
		modMorph = 0
	} else if modMorph > 1 {
		modMorph = 1
	}

	// Effect mode solos the wet signal regardless of the mix knob.
	mixTarget := mixPct * 0.01
	if mixTarget < 0 {
		mixTarget = 0
	} else if mixTarget > 1 {
		mixTarget = 1
	}
	effectiveMix := mixTarget
	if effectOn {
		effectiveMix = 1
	}

	p.zf.SetMorph(modMorph)
	p.zf.SetMix(effectiveMix)

	// Coefficients update once per block; pole telemetry follows.
	p.zf.UpdateCoefficientsBlock(numSamples)
	p.publishPoles()

	p.zf.Process(outL[:numSamples], outR[:numSamples])

	// Wet/dry block peaks, pre-bypass, for the delta bars.
	var wetMax, dryMax float32
	for i := 0; i < numSamples; i++ {
		if a := abs32(outL[i]); a > wetMax {
			wetMax = a
		}
		if a := abs32(outR[i]); a > wetMax {
			wetMax = a
		}
		if a := abs32(dryL[i]); a > dryMax {
			dryMax = a
		}
		if a := abs32(dryR[i]); a > dryMax {
			dryMax = a
		}
	}

	delta := wetMax - dryMax
	if delta < 0 {
		delta = 0
	}
	coef := p.uiReleaseCoef
	if delta > p.deltaState {
		coef = p.uiAttackCoef
	}
	p.deltaState += coef * (delta - p.deltaState)
	p.tel.WritePeak(p.deltaState)

	// Per-sample bypass crossfade avoids zipper noise on toggle.
	for i := 0; i < numSamples; i++ {
		amt := float32(p.bypassSmooth.Next())
		outL[i] = outL[i]*amt + dryL[i]*(1-amt)
		outR[i] = outR[i]*amt + dryR[i]*(1-amt)
	}

	// Smoothed output gain.
	p.gainSmooth.SetTarget(math.Pow(10, outDb/20))
	for i := 0; i < numSamples; i++ {
		g := float32(p.gainSmooth.Next())
		outL[i] *= g
		outR[i] *= g
	}

	// Level meter envelope over the final output.
	var blockMax float32
	for i := 0; i < numSamples; i++ {
		if a := abs32(outL[i]); a > blockMax {
			blockMax = a
		}
		if a := abs32(outR[i]); a > blockMax {
			blockMax = a
		}
	}
	coef = p.uiReleaseCoef
	if blockMax > p.uiLevelState {
		coef = p.uiAttackCoef
	}
	p.uiLevelState += coef * (blockMax - p.uiLevelState)
	p.tel.PublishLevel(p.uiLevelState)

	// Raw samples for the spectrum; overflow drops silently.
	p.tel.StageSamples(outL[:numSamples])
}

func (p *Processor) publishPoles() {
	last := p.zf.LastPoles()
	var poles [telemetry.NumPolePairs]telemetry.PolePair
	for i := range last {
		poles[i] = telemetry.PolePair{R: last[i].R, Theta: last[i].Theta}
	}
	p.tel.PublishPoles(poles[:])
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
