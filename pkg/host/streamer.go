package host

import (
	"github.com/gopxl/beep/v2"

	"github.com/1hoookkk/fieldengine/pkg/engine"
	"github.com/1hoookkk/fieldengine/pkg/framework/process"
)

// EffectStreamer runs the engine inside a beep playback chain: samples
// from the wrapped streamer pass through the processor block by block.
type EffectStreamer struct {
	proc     *engine.Processor
	pctx     *process.Context
	upstream beep.Streamer

	blockSize  int
	inL, inR   []float32
	outL, outR []float32
}

// NewEffectStreamer wraps a streamer with the effect. The processor
// must already be initialized for the chain's sample rate.
func NewEffectStreamer(proc *engine.Processor, upstream beep.Streamer, blockSize int) *EffectStreamer {
	e := &EffectStreamer{
		proc:      proc,
		pctx:      process.NewContext(blockSize, proc.Parameters()),
		upstream:  upstream,
		blockSize: blockSize,
		inL:       make([]float32, blockSize),
		inR:       make([]float32, blockSize),
		outL:      make([]float32, blockSize),
		outR:      make([]float32, blockSize),
	}
	return e
}

// Stream pulls from the upstream streamer, processes in engine-sized
// chunks, and writes the result back.
func (e *EffectStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.upstream.Stream(samples)

	for start := 0; start < n; start += e.blockSize {
		end := start + e.blockSize
		if end > n {
			end = n
		}
		chunk := end - start

		for i := 0; i < chunk; i++ {
			e.inL[i] = float32(samples[start+i][0])
			e.inR[i] = float32(samples[start+i][1])
		}

		e.pctx.Input = [][]float32{e.inL[:chunk], e.inR[:chunk]}
		e.pctx.Output = [][]float32{e.outL[:chunk], e.outR[:chunk]}
		e.proc.ProcessAudio(e.pctx)

		for i := 0; i < chunk; i++ {
			samples[start+i][0] = float64(e.outL[i])
			samples[start+i][1] = float64(e.outR[i])
		}
	}

	return n, ok
}

// Err reports the upstream error, if any.
func (e *EffectStreamer) Err() error {
	return e.upstream.Err()
}
