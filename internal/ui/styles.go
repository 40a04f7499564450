package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	App          lipgloss.Style
	TimeLabel    lipgloss.Style
	TimeDisabled lipgloss.Style
	TrackTitle   lipgloss.Style
	TrackArtist  lipgloss.Style
	ListNormal   lipgloss.Style
	ListSelected lipgloss.Style
	ListPointer  lipgloss.Style
	ErrorText    lipgloss.Style
	StatusHint   lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{}
	s.App = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		Padding(1, 2)
	s.TimeLabel = lipgloss.NewStyle().Bold(true)
	s.TimeDisabled = lipgloss.NewStyle().Faint(true)
	s.TrackTitle = lipgloss.NewStyle().Bold(true)
	s.TrackArtist = lipgloss.NewStyle().Faint(true)
	s.ListNormal = lipgloss.NewStyle()
	s.ListSelected = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"})
	s.ListPointer = lipgloss.NewStyle().SetString("> ")
	s.ErrorText = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	s.StatusHint = lipgloss.NewStyle().Faint(true)
	return s
}
