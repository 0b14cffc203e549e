package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Smart ToDo theme. Kept intentionally small: a few reusable styles shared
// by the TUI and the CLI output.

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Key      = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good     = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn     = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad      = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Muted    = lipgloss.NewStyle().Foreground(cMuted)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(cAccent)

	doneStyle    = lipgloss.NewStyle().Foreground(cMuted).Strikethrough(true)
	overdueStyle = lipgloss.NewStyle().Foreground(cBad)
)
