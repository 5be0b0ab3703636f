// Package process provides the audio processing context handed to the
// processor on every block.
package process

import (
	"github.com/1hoookkk/fieldengine/pkg/framework/param"
)

// Context carries one block of audio plus parameter access. All
// buffers are pre-allocated at setup so the audio thread never
// allocates.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	workBuffer []float32
	tempBuffer []float32

	params *param.Registry
}

// NewContext creates a process context with pre-allocated buffers.
func NewContext(maxBlockSize int, params *param.Registry) *Context {
	return &Context{
		workBuffer: make([]float32, maxBlockSize),
		tempBuffer: make([]float32, maxBlockSize),
		params:     params,
	}
}

// Param returns the current normalized value of a parameter.
func (c *Context) Param(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter.
func (c *Context) ParamPlain(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// ParamBool reads a toggle parameter.
func (c *Context) ParamBool(id uint32) bool {
	if p := c.params.Get(id); p != nil {
		return p.GetBool()
	}
	return false
}

// SetParam sets a parameter's normalized value. Hosts call this when
// applying automation at block boundaries.
func (c *Context) SetParam(id uint32, value float64) {
	if p := c.params.Get(id); p != nil {
		p.SetValue(value)
	}
}

// NumSamples returns the number of samples in the current block.
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels.
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels.
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// WorkBuffer returns the pre-allocated scratch buffer sized to the
// current block.
func (c *Context) WorkBuffer() []float32 {
	return c.workBuffer[:c.NumSamples()]
}

// TempBuffer returns the second scratch buffer sized to the current
// block.
func (c *Context) TempBuffer() []float32 {
	return c.tempBuffer[:c.NumSamples()]
}

// PassThrough copies input to output unchanged.
func (c *Context) PassThrough() {
	n := c.NumInputChannels()
	if c.NumOutputChannels() < n {
		n = c.NumOutputChannels()
	}
	for ch := 0; ch < n; ch++ {
		copy(c.Output[ch], c.Input[ch])
	}
}

// Clear zeros the output buffers.
func (c *Context) Clear() {
	for ch := range c.Output {
		for i := range c.Output[ch] {
			c.Output[ch][i] = 0
		}
	}
}
