// Package ui implements the Bubbletea terminal front end: a pure
// telemetry consumer polling the engine at a fixed rate.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1hoookkk/fieldengine/pkg/display"
	"github.com/1hoookkk/fieldengine/pkg/engine"
	"github.com/1hoookkk/fieldengine/pkg/framework/param"
)

type tickMsg time.Time

// Model is the Bubbletea model. It reads telemetry through the display
// sampler and writes only parameter values; audio data flows one way.
type Model struct {
	proc    *engine.Processor
	sampler *display.Sampler
	vis     *Visualizer

	frame     display.Frame
	bands     [numBands]float64
	sampleBuf []float64
	tickEvery time.Duration
	width     int
	height    int
	quitting  bool
}

// NewModel wires the UI to a running processor.
func NewModel(proc *engine.Processor, sampleRate float64, refreshHz int) Model {
	if refreshHz <= 0 {
		refreshHz = display.DefaultRefreshHz
	}
	return Model{
		proc:      proc,
		sampler:   display.NewSampler(proc.Telemetry(), refreshHz),
		vis:       NewVisualizer(sampleRate),
		sampleBuf: make([]float64, fftSize),
		tickEvery: time.Second / time.Duration(refreshHz),
	}
}

// Init starts the poll timer and requests the terminal size.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), tea.WindowSize())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses, ticks, and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.frame = m.sampler.Sample()
		n := len(m.frame.Samples)
		if n > len(m.sampleBuf) {
			n = len(m.sampleBuf)
		}
		for i := 0; i < n; i++ {
			m.sampleBuf[i] = float64(m.frame.Samples[i])
		}
		m.bands = m.vis.Analyze(m.sampleBuf[:n])
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	params := m.proc.Parameters()
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true

	case "b":
		p := params.Get(engine.ParamBypass)
		p.SetBool(!p.GetBool())

	case "e":
		p := params.Get(engine.ParamEffectMode)
		p.SetBool(!p.GetBool())

	case "t":
		p := params.Get(engine.ParamTestTone)
		p.SetBool(!p.GetBool())

	case "left":
		nudge(params.Get(engine.ParamCharacter), -5)
	case "right":
		nudge(params.Get(engine.ParamCharacter), 5)

	case "-", "_":
		nudge(params.Get(engine.ParamMix), -5)
	case "+", "=":
		nudge(params.Get(engine.ParamMix), 5)

	case "down":
		nudge(params.Get(engine.ParamGain), -1)
	case "up":
		nudge(params.Get(engine.ParamGain), 1)
	}
}

func nudge(p *param.Parameter, delta float64) {
	p.SetPlainValue(p.GetPlainValue() + delta)
}
