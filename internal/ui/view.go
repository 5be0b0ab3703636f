package ui

import (
	"fmt"
	"strings"

	"github.com/1hoookkk/fieldengine/pkg/engine"
)

const panelWidth = 60

// View renders the full frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		titleStyle.Render("FIELDSCOPE"),
		"",
		m.renderLevel(),
		m.renderWaveform(),
		m.renderSpectrum(),
		"",
		m.renderPoles(),
		"",
		m.renderParams(),
		m.renderHelp(),
	}

	return frameStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderLevel() string {
	width := panelWidth - 8
	filled := int(float64(m.frame.Level) * float64(width))
	if filled > width {
		filled = width
	}

	bar := levelStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("─", width-filled))
	return labelStyle.Render("LEVEL ") + bar
}

// renderWaveform shows the delta peak ring as a bar strip, oldest on
// the left.
func (m Model) renderWaveform() string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("DELTA "))
	for _, p := range m.frame.Peaks {
		idx := int(float64(p) * 4 * float64(len(barBlocks)-1))
		if idx < 0 {
			idx = 0
		} else if idx > len(barBlocks)-1 {
			idx = len(barBlocks) - 1
		}
		sb.WriteString(accentStyle.Render(barBlocks[idx]))
	}
	return sb.String()
}

func (m Model) renderSpectrum() string {
	return labelStyle.Render("SPECT ") + m.vis.Render(m.bands, panelWidth-8)
}

func (m Model) renderPoles() string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("POLES"))
	for i, p := range m.frame.Poles {
		if i%3 == 0 {
			sb.WriteString("\n  ")
		}
		sb.WriteString(dimStyle.Render(fmt.Sprintf("r=%.3f θ=%+.2f  ", p.R, p.Theta)))
	}
	return sb.String()
}

func (m Model) renderParams() string {
	params := m.proc.Parameters()
	character := params.Get(engine.ParamCharacter)
	mix := params.Get(engine.ParamMix)
	gain := params.Get(engine.ParamGain)

	line := fmt.Sprintf("CHARACTER %s   MIX %s   GAIN %s",
		character.FormatValue(character.GetValue()),
		mix.FormatValue(mix.GetValue()),
		gain.FormatValue(gain.GetValue()))

	flags := []string{}
	if params.Get(engine.ParamBypass).GetBool() {
		flags = append(flags, "BYPASS")
	}
	if params.Get(engine.ParamEffectMode).GetBool() {
		flags = append(flags, "EFFECT")
	}
	if params.Get(engine.ParamTestTone).GetBool() {
		flags = append(flags, "TONE")
	}

	out := labelStyle.Render(line)
	if len(flags) > 0 {
		out += "   " + accentStyle.Render(strings.Join(flags, " "))
	}
	if m.frame.Dropped > 0 {
		out += "\n" + dimStyle.Render(fmt.Sprintf("dropped samples: %d", m.frame.Dropped))
	}
	return out
}

func (m Model) renderHelp() string {
	return dimStyle.Render("←/→ character  -/+ mix  ↑/↓ gain  b bypass  e effect  t tone  q quit")
}
