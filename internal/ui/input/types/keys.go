package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the modes react to. It doubles as the source
// for the help bar.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Query     key.Binding
	Open      key.Binding
	Repeat    key.Binding
	Options   key.Binding
	Trigger   key.Binding
	Clear     key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	HelpPage  key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// options panel
	Decrease key.Binding
	Increase key.Binding
	Toggle   key.Binding
	Accept   key.Binding
	Cancel   key.Binding

	// query box
	Older key.Binding
	Newer key.Binding

	// confirm prompt
	Yes key.Binding
	No  key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),

	Query:     key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "search")),
	Open:      key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "read post")),
	Repeat:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "search again")),
	Options:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "options")),
	Trigger:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "run indexer")),
	Clear:     key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear index")),
	Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	HelpPage:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "help in pager")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

	Decrease: key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
	Increase: key.NewBinding(key.WithKeys("right", "l", "+", "="), key.WithHelp("→/l", "increase")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Accept:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

	Older: key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "older")),
	Newer: key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "newer")),

	Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Query, k.Open, k.Options, k.Trigger, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Query, k.Open, k.Repeat, k.Options},
		{k.Trigger, k.Clear, k.Dismiss},
		{k.Help, k.HelpPage, k.Quit},
	}
}

// OptionsHelp is shown while the options panel is focused
func (k KeyMap) OptionsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Decrease, k.Increase, k.Toggle, k.Accept, k.Cancel}
}

// QueryHelp is shown while typing a query
func (k KeyMap) QueryHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		k.Older,
		k.Newer,
		k.Cancel,
	}
}

// ConfirmHelp is shown with the clear index prompt
func (k KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}
