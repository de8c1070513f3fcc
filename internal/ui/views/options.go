package views

import (
	"fmt"
	"strings"

	"sportseek/internal/request"
	"sportseek/internal/ui/state"
)

// OptionsRenderer draws the search options as a one line summary or, while
// editing, as a panel
type OptionsRenderer struct {
	styles *Styles
}

// NewOptionsRenderer creates a new options renderer
func NewOptionsRenderer(styles *Styles) *OptionsRenderer {
	return &OptionsRenderer{styles: styles}
}

// OptionValue formats the value of one option
func OptionValue(s request.Settings, f state.OptionField) string {
	switch f {
	case state.OptionSort:
		return s.SortMethod.Label()
	case state.OptionPageRank:
		if s.UsePageRank {
			return "on"
		}
		return "off"
	case state.OptionCount:
		return fmt.Sprintf("%d", s.Count)
	case state.OptionWeightRelevance:
		return fmt.Sprintf("%.1f", s.WeightRelevance)
	case state.OptionWeightScore:
		return fmt.Sprintf("%.1f", s.WeightScore)
	case state.OptionWeightTime:
		return fmt.Sprintf("%.1f", s.WeightTime)
	}
	return ""
}

// RenderSummary renders the options on a single line
func (r *OptionsRenderer) RenderSummary(s request.Settings) string {
	return r.styles.Subtitle.Render(fmt.Sprintf(
		"sort %s · pagerank %s · %d results · weights r=%.1f s=%.1f t=%.1f   (o to edit)",
		strings.ToLower(s.SortMethod.Label()), OptionValue(s, state.OptionPageRank), s.Count,
		s.WeightRelevance, s.WeightScore, s.WeightTime,
	))
}

// RenderPanel renders the editable options panel with the focused row
// highlighted
func (r *OptionsRenderer) RenderPanel(s request.Settings, focus int) string {
	var lines []string
	for i, f := range state.OptionFields {
		label := fmt.Sprintf("%-17s", f.Label())
		value := OptionValue(s, f)
		if f == state.OptionWeightRelevance || f == state.OptionWeightScore || f == state.OptionWeightTime {
			value = fmt.Sprintf("%-4s %s", value, slider(f, s))
		}
		line := fmt.Sprintf("  %s ‹ %s ›", label, value)
		if i == focus {
			line = r.styles.PanelFocus.Render("▸" + line[1:])
		}
		lines = append(lines, line)
	}
	return r.styles.Panel.Render(strings.Join(lines, "\n"))
}

// PanelHeight is the number of lines RenderPanel produces
func PanelHeight() int {
	return len(state.OptionFields) + 2
}

// slider draws a weight as a bar, one cell per 0.1 up to 2.0
func slider(f state.OptionField, s request.Settings) string {
	var v float64
	switch f {
	case state.OptionWeightRelevance:
		v = s.WeightRelevance
	case state.OptionWeightScore:
		v = s.WeightScore
	case state.OptionWeightTime:
		v = s.WeightTime
	}
	const cells = 20
	filled := int(v*10 + 0.5)
	if filled > cells {
		filled = cells
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}
