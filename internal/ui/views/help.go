package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Search", [][2]string{
		{"/, i", "Edit the query"},
		{"Enter", "Run the search (while editing)"},
		{"↑/↓", "Recall earlier searches (while editing)"},
		{"Esc", "Stop editing"},
		{"r", "Run the last search again"},
		{"o", "Edit search options"},
	}},
	{"Options", [][2]string{
		{"↑/↓, j/k", "Choose an option"},
		{"←/→, h/l", "Change the value"},
		{"Space", "Toggle / next value"},
		{"Enter", "Keep changes"},
		{"Esc", "Discard changes"},
	}},
	{"Results", [][2]string{
		{"↑/↓, j/k", "Navigate up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
		{"Enter, v", "Read the full post"},
	}},
	{"Index", [][2]string{
		{"t", "Run the indexer"},
		{"X", "Clear the index (asks first)"},
	}},
	{"Other", [][2]string{
		{"Esc", "Dismiss notifications"},
		{"?", "Toggle this help"},
		{"H", "Open this help in a pager"},
		{"q", "Quit"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContentPlain generates help content with colors for pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("sportseek Help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, kv := range section.keys {
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", kv[0])), descStyle.Render(kv[1])))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}

	return strings.TrimRight(help.String(), "\n")
}

// RenderHelpContent renders the help information clipped to height, starting
// at scrollOffset
func (r *HelpRenderer) RenderHelpContent(height int, scrollOffset int) string {
	content := r.RenderHelpContentPlain()
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Calculate visible window (account for popup border and padding)
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines <= visibleHeight {
		return content
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	visible := append([]string(nil), lines[scrollOffset:endLine]...)

	// Add scroll indicators
	if scrollOffset > 0 {
		visible[0] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↑ (more above)")
	}
	if endLine < totalLines {
		visible[len(visible)-1] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↓ (more below)")
	}

	return strings.Join(visible, "\n")
}

// HelpLineCount is the number of lines in the unclipped help
func (r *HelpRenderer) HelpLineCount() int {
	return strings.Count(r.RenderHelpContentPlain(), "\n") + 1
}
