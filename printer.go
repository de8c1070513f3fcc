package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"sportseek/internal/domain"
	"sportseek/internal/session"
	"sportseek/internal/ui/views"
)

// printer is the headless NotificationSink and ResultsListener. Results and
// successes go to out, failures to errOut.
type printer struct {
	out    io.Writer
	errOut io.Writer
	query  string
	cards  *views.ResultRenderer

	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newPrinter(out, errOut io.Writer) *printer {
	return &printer{
		out:     out,
		errOut:  errOut,
		cards:   views.NewResultRenderer(views.NewStyles()),
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

func (p *printer) Notify(n session.Notification) {
	if n.Severity == domain.SeverityError {
		fmt.Fprintln(p.errOut, p.failure.Render("✗ "+n.Message))
		return
	}
	fmt.Fprintln(p.out, p.success.Render("✓ "+n.Message))
}

func (p *printer) ResultsChanged(items []domain.SearchResultItem) {
	if p.query == "" {
		// index cleared
		return
	}
	fmt.Fprintln(p.out, p.header.Render(fmt.Sprintf("%d results for %q", len(items), p.query)))
	fmt.Fprintln(p.out)
	for i, item := range items {
		fmt.Fprintln(p.out, p.cards.RenderResult(item, i+1, false, 100))
		if item.PostURL != "" {
			fmt.Fprintln(p.out, "   "+item.PostURL)
		}
		fmt.Fprintln(p.out)
	}
}
