package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Prompt        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	InfoBox       lipgloss.Style
	Panel         lipgloss.Style
	PanelFocus    lipgloss.Style
	ResultTitle   lipgloss.Style
	ResultMeta    lipgloss.Style
	ResultScore   lipgloss.Style
	SelectionBg   lipgloss.Style
	Sport         lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	ToastSuccess  lipgloss.Style
	ToastError    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Confirm:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Prompt:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Help:     lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		PanelFocus:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ResultTitle:   lipgloss.NewStyle().Bold(true),
		ResultMeta:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ResultScore:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Sport:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		ToastSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("78")).
			PaddingLeft(1),
		ToastError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("203")).
			PaddingLeft(1),
	}
}

// GetSportColor returns a stable color for a sport label
func GetSportColor(sport string) string {
	palette := []string{"214", "78", "33", "170", "51", "208", "141"}
	if sport == "" {
		return "241"
	}
	h := 0
	for _, r := range sport {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return palette[h%len(palette)]
}
