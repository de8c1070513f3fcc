package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sportseek/internal/domain"
	"sportseek/internal/request"
	"sportseek/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	BaseURL          string
	Query            string
	QueryInput       string // rendered text input while editing
	Editing          bool
	Prompt           string
	Options          request.Settings
	OptionsOpen      bool
	OptionIndex      int
	Results          []domain.SearchResultItem
	HasSearched      bool
	SelectedIndex    int
	ViewportOffset   int
	ViewportHeight   int
	Busy             bool
	Spinner          string
	Phase            string
	Toasts           []state.Toast
	ConfirmClear     bool
	ShowHelp         bool
	HelpScrollOffset int
	HelpBar          string // rendered bubbles help for the current mode
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	resultRender  *ResultRenderer
	optionsRender *OptionsRenderer
	toastRender   *ToastRenderer
	popupRender   *PopupRenderer
	helpRender    *HelpRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		resultRender:  NewResultRenderer(styles),
		optionsRender: NewOptionsRenderer(styles),
		toastRender:   NewToastRenderer(styles),
		popupRender:   NewPopupRenderer(styles),
		helpRender:    NewHelpRenderer(),
	}
}

// Results exposes the card renderer, used for the pager
func (r *Renderer) Results() *ResultRenderer {
	return r.resultRender
}

// Help exposes the help renderer
func (r *Renderer) Help() *HelpRenderer {
	return r.helpRender
}

// headerLines is what sits above the result list: title, query, options and
// their spacing
const headerLines = 6

// footerLines is the help bar plus its spacing and the container padding
const footerLines = 4

// ResultsViewportHeight returns how many result cards fit on screen
func ResultsViewportHeight(height int, optionsOpen bool, toasts int) int {
	avail := height - headerLines - footerLines - toasts
	if optionsOpen {
		avail -= PanelHeight() - 1
	}
	n := avail / CardHeight
	if n < 1 {
		n = 1
	}
	return n
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	if vs.ShowHelp {
		helpContent := r.helpRender.RenderHelpContent(vs.Height, vs.HelpScrollOffset)
		return r.popupRender.RenderPopup(helpContent, vs.Height, vs.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n\n")

	// Query line
	prompt := vs.Prompt
	if prompt == "" {
		prompt = "Search: "
	}
	content.WriteString(r.styles.Prompt.Render(prompt))
	if vs.Editing {
		content.WriteString(vs.QueryInput)
	} else if vs.Query != "" {
		content.WriteString(vs.Query)
	} else {
		content.WriteString(r.styles.Dim.Render("press / to search sports posts"))
	}
	content.WriteString("\n")

	// Options
	if vs.OptionsOpen {
		content.WriteString(r.optionsRender.RenderPanel(vs.Options, vs.OptionIndex))
	} else {
		content.WriteString(r.optionsRender.RenderSummary(vs.Options))
	}
	content.WriteString("\n\n")

	// Clear index confirmation
	if vs.ConfirmClear {
		content.WriteString(r.styles.Confirm.Render("Clear the search index? Every indexed post will be removed. (y/n): "))
		content.WriteString("\n\n")
	}

	content.WriteString(r.renderResults(vs))

	// Footer: toasts then the help bar, pushed to the bottom
	footer := []string{}
	if toasts := r.toastRender.RenderToasts(vs.Toasts, vs.Width); toasts != "" {
		footer = append(footer, toasts)
	}
	if vs.HelpBar != "" {
		footer = append(footer, r.styles.Help.Render(vs.HelpBar))
	}
	if len(footer) > 0 {
		footerText := strings.Join(footer, "\n")
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := vs.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		paddingNeeded := availableLines - currentLines - lipgloss.Height(footerText)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(footerText)
	}

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitle(vs ViewState) string {
	logo := r.styles.Title.Render("sportseek")

	right := ""
	if vs.Busy {
		right = r.styles.StatusLoading.Render(strings.TrimSpace(vs.Spinner + " Working..."))
	} else if vs.Phase == "failed" {
		right = r.styles.StatusError.Render("last request failed")
	}
	if vs.BaseURL != "" {
		host := r.styles.Subtitle.Render(vs.BaseURL)
		if right != "" {
			right = right + "  " + host
		} else {
			right = host
		}
	}
	if right == "" {
		return logo
	}

	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + right
}

// renderResults renders the visible window of result cards
func (r *Renderer) renderResults(vs ViewState) string {
	if len(vs.Results) == 0 {
		switch {
		case vs.Busy:
			return r.styles.Dim.Render("Searching...")
		case vs.HasSearched:
			return r.styles.Dim.Render("No results. Try other words or run the indexer (t).")
		default:
			return r.styles.Dim.Render("No search yet.")
		}
	}

	height := vs.ViewportHeight
	if height < 1 {
		height = 1
	}
	start := vs.ViewportOffset
	if start < 0 || start >= len(vs.Results) {
		start = 0
	}
	end := start + height
	if end > len(vs.Results) {
		end = len(vs.Results)
	}

	var lines []string
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start)))
	}
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, r.resultRender.RenderResult(vs.Results[i], i+1, i == vs.SelectedIndex, vs.Width))
	}
	lines = append(lines, strings.Join(cards, "\n\n"))
	if below := len(vs.Results) - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}
