// Package host connects the engine to audio output. The oto host owns
// the real callback thread; the beep streamer lets the engine sit in a
// playback chain instead.
package host

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/1hoookkk/fieldengine/pkg/engine"
	"github.com/1hoookkk/fieldengine/pkg/framework/process"
)

// bytesPerSample is the size of one float32 frame sample on the wire.
const bytesPerSample = 4

// OtoHost drives the processor from the oto output callback. Each Read
// renders whole blocks through the engine with silent input, so the
// test tone is the only signal source.
type OtoHost struct {
	proc *engine.Processor
	pctx *process.Context

	ctx    *oto.Context
	player *oto.Player

	blockSize  int
	inL, inR   []float32
	outL, outR []float32
	pending    []byte
	unread     []byte

	mu      sync.Mutex
	started bool
}

// NewOtoHost opens the audio device and prepares the processor.
func NewOtoHost(proc *engine.Processor, sampleRate, blockSize int) (*OtoHost, error) {
	if !proc.SupportsLayout(2, 2) {
		return nil, fmt.Errorf("processor rejected stereo layout")
	}
	if err := proc.Initialize(float64(sampleRate), blockSize); err != nil {
		return nil, fmt.Errorf("initializing processor: %w", err)
	}
	if err := proc.SetActive(true); err != nil {
		return nil, fmt.Errorf("activating processor: %w", err)
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	h := &OtoHost{
		proc:      proc,
		pctx:      process.NewContext(blockSize, proc.Parameters()),
		ctx:       ctx,
		blockSize: blockSize,
		inL:       make([]float32, blockSize),
		inR:       make([]float32, blockSize),
		outL:      make([]float32, blockSize),
		outR:      make([]float32, blockSize),
		pending:   make([]byte, 2*blockSize*bytesPerSample),
	}
	h.pctx.SampleRate = float64(sampleRate)
	h.pctx.Input = [][]float32{h.inL, h.inR}
	h.pctx.Output = [][]float32{h.outL, h.outR}
	h.player = ctx.NewPlayer(h)
	return h, nil
}

// Read renders audio for the device. Partial blocks carry over to the
// next call.
func (h *OtoHost) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(h.unread) == 0 {
			h.renderBlock()
		}
		c := copy(p[n:], h.unread)
		h.unread = h.unread[c:]
		n += c
	}
	return n, nil
}

func (h *OtoHost) renderBlock() {
	for i := 0; i < h.blockSize; i++ {
		h.inL[i] = 0
		h.inR[i] = 0
	}
	h.proc.ProcessAudio(h.pctx)
	interleaveLE(h.pending, h.outL, h.outR)
	h.unread = h.pending
}

// Start begins playback.
func (h *OtoHost) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started && h.player != nil {
		h.player.Play()
		h.started = true
	}
}

// Close stops playback and releases the player.
func (h *OtoHost) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = false
	if h.player != nil {
		err := h.player.Close()
		h.player = nil
		return err
	}
	return nil
}

// interleaveLE packs stereo float32 blocks as little-endian interleaved
// bytes. dst must hold 8 bytes per frame.
func interleaveLE(dst []byte, left, right []float32) {
	for i := range left {
		binary.LittleEndian.PutUint32(dst[i*8:], math.Float32bits(left[i]))
		binary.LittleEndian.PutUint32(dst[i*8+4:], math.Float32bits(right[i]))
	}
}
