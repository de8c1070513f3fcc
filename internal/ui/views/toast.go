package views

import (
	"strings"

	"sportseek/internal/domain"
	"sportseek/internal/ui/state"
)

// ToastRenderer draws pending notifications
type ToastRenderer struct {
	styles *Styles
}

// NewToastRenderer creates a new toast renderer
func NewToastRenderer(styles *Styles) *ToastRenderer {
	return &ToastRenderer{styles: styles}
}

// RenderToasts renders the toasts newest last, each as a summary and detail
func (r *ToastRenderer) RenderToasts(toasts []state.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	var out []string
	for _, t := range toasts {
		style := r.styles.ToastSuccess
		icon := "✓"
		if t.Severity == domain.SeverityError {
			style = r.styles.ToastError
			icon = "✗"
		}
		text := icon + " " + t.Summary
		if t.Detail != "" {
			text += ": " + t.Detail
		}
		out = append(out, style.Render(truncate(text, width-8)))
	}
	return strings.Join(out, "\n")
}
