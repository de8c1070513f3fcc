package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		// failed requests have already been reported by the printer
		if !errors.Is(err, errRequestFailed) {
			errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
			fmt.Fprintln(os.Stderr, errStyle.Render("Error:"), err)
		}
		os.Exit(1)
	}
}
