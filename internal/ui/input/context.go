package input

import (
	"sportseek/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of results on screen
func (c *ModelContext) TotalItems() int {
	return len(c.State.Results)
}

// HasSelection reports whether the cursor is on a result
func (c *ModelContext) HasSelection() bool {
	_, ok := c.State.SelectedResult()
	return ok
}

// QueryText returns the text last typed into the query box
func (c *ModelContext) QueryText() string {
	return c.State.Query
}

// OptionIndex returns the focused options panel row
func (c *ModelContext) OptionIndex() int {
	return c.State.OptionIndex
}

// OptionCount returns the number of options panel rows
func (c *ModelContext) OptionCount() int {
	return len(state.OptionFields)
}

// ShowingHelp reports whether the help overlay is open
func (c *ModelContext) ShowingHelp() bool {
	return c.State.ShowHelp
}
