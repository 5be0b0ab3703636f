package ui

import "github.com/charmbracelet/lipgloss"

// ANSI palette so the colors follow the user's terminal theme.
var (
	colorBorder = lipgloss.ANSIColor(8)  // bright black
	colorTitle  = lipgloss.ANSIColor(10) // bright green
	colorText   = lipgloss.ANSIColor(7)  // light gray
	colorDim    = lipgloss.ANSIColor(8)  // bright black
	colorAccent = lipgloss.ANSIColor(11) // bright yellow
	colorLevel  = lipgloss.ANSIColor(2)  // green

	// Spectrum and meter gradient: green -> yellow -> red.
	gradLow  = lipgloss.ANSIColor(10)
	gradMid  = lipgloss.ANSIColor(11)
	gradHigh = lipgloss.ANSIColor(9)
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	levelStyle = lipgloss.NewStyle().
			Foreground(colorLevel)

	gradLowStyle  = lipgloss.NewStyle().Foreground(gradLow)
	gradMidStyle  = lipgloss.NewStyle().Foreground(gradMid)
	gradHighStyle = lipgloss.NewStyle().Foreground(gradHigh)
)
