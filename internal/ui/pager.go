package ui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// pagerCommand shows text in ov while Bubble Tea has released the terminal.
// It implements tea.ExecCommand.
type pagerCommand struct {
	content string
}

// Run blocks until the user leaves the pager
func (p *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	// Leave nothing behind on our screen when ov exits
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// ov opens the controlling terminal itself, so the streams handed over by
// Bubble Tea are not needed
func (p *pagerCommand) SetStdin(io.Reader) {}
func (p *pagerCommand) SetStdout(io.Writer) {}
func (p *pagerCommand) SetStderr(io.Writer) {}

// openPager suspends the program, shows content and reports back with a
// pagerClosedMsg
func openPager(what, content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return pagerClosedMsg{what: what, err: err}
	})
}
