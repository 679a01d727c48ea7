package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	InfoBox       lipgloss.Style
	HelpBox       lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	ColumnHeader  lipgloss.Style
	ActiveColumn  lipgloss.Style
	Recent        lipgloss.Style
	RecentKey     lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Points        lipgloss.Style
	Comments      lipgloss.Style
	Author        lipgloss.Style
	SelectionBg   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")),
		Label:  lipgloss.NewStyle().Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(72).
			BorderForeground(lipgloss.Color("208")),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		ColumnHeader:  lipgloss.NewStyle().Bold(true).Underline(true),
		ActiveColumn:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("208")),
		Recent:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		RecentKey:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Points:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Comments:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // blue
		Author:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}
