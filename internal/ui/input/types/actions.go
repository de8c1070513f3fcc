package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search actions
type RepeatSearchAction struct{}

func (a RepeatSearchAction) Type() string { return "repeat_search" }

type OpenResultAction struct {
	Index int
}

func (a OpenResultAction) Type() string { return "open_result" }

// Index actions
type TriggerIndexAction struct{}

func (a TriggerIndexAction) Type() string { return "trigger_index" }

type ClearIndexAction struct{}

func (a ClearIndexAction) Type() string { return "clear_index" }

// Options panel actions
type FocusOptionAction struct {
	Index int
}

func (a FocusOptionAction) Type() string { return "focus_option" }

type AdjustOptionAction struct {
	Delta int
}

func (a AdjustOptionAction) Type() string { return "adjust_option" }

type CommitOptionsAction struct{}

func (a CommitOptionsAction) Type() string { return "commit_options" }

type RevertOptionsAction struct{}

func (a RevertOptionsAction) Type() string { return "revert_options" }

// Other actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type HelpScrollAction struct {
	Delta int
}

func (a HelpScrollAction) Type() string { return "help_scroll" }

type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type DismissToastsAction struct{}

func (a DismissToastsAction) Type() string { return "dismiss_toasts" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
