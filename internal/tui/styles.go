package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/user/phishguard/internal/model"
)

var (
	// Colors
	Primary   = lipgloss.Color("39")
	Secondary = lipgloss.Color("86")
	Subtle    = lipgloss.Color("241")
	Safe      = lipgloss.Color("46")
	Suspect   = lipgloss.Color("214")
	Malicious = lipgloss.Color("196")

	// Header styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(Primary).
			Padding(0, 2).
			Align(lipgloss.Center)

	// Section styles
	SectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(1, 2).
			MarginBottom(1)

	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				MarginBottom(1)

	// Label and value styles
	LabelStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Heartbeat banner
	OnlineStyle = lipgloss.NewStyle().
			Foreground(Safe).
			Bold(true)

	OfflineStyle = lipgloss.NewStyle().
			Foreground(Malicious).
			Bold(true)

	// Verdict styles
	SafeStyle = lipgloss.NewStyle().
			Foreground(Safe)

	SuspiciousStyle = lipgloss.NewStyle().
			Foreground(Suspect)

	MaliciousStyle = lipgloss.NewStyle().
			Foreground(Malicious).
			Bold(true)

	// Dim style
	DimStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			MarginTop(1)
)

// VerdictStyle returns the display style for a verdict bucket.
func VerdictStyle(v model.Verdict) lipgloss.Style {
	switch v {
	case model.VerdictSafe:
		return SafeStyle
	case model.VerdictSuspicious:
		return SuspiciousStyle
	default:
		return MaliciousStyle
	}
}
