package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sportseek/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys

	// The help overlay captures scrolling and closing keys
	if ctx.ShowingHelp() {
		switch {
		case key.Matches(msg, k.ForceQuit):
			return []types.Action{types.QuitAction{Force: true}}, true
		case key.Matches(msg, k.Up):
			return []types.Action{types.HelpScrollAction{Delta: -1}}, true
		case key.Matches(msg, k.Down):
			return []types.Action{types.HelpScrollAction{Delta: 1}}, true
		case key.Matches(msg, k.Help), key.Matches(msg, k.Dismiss), key.Matches(msg, k.Quit):
			return []types.Action{types.ToggleHelpAction{}}, true
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true

	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, k.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case key.Matches(msg, k.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case key.Matches(msg, k.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, k.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, k.Query):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeQuery}}, true

	case key.Matches(msg, k.Open):
		// Open the full post for the selected result
		if ctx.HasSelection() {
			return []types.Action{types.OpenResultAction{Index: ctx.CurrentIndex()}}, true
		}
		return nil, true

	case key.Matches(msg, k.Repeat):
		return []types.Action{types.RepeatSearchAction{}}, true

	case key.Matches(msg, k.Options):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeOptions}}, true

	case key.Matches(msg, k.Trigger):
		return []types.Action{types.TriggerIndexAction{}}, true

	case key.Matches(msg, k.Clear):
		// Clearing is destructive, ask first
		return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirmClear}}, true

	case key.Matches(msg, k.Dismiss):
		return []types.Action{types.DismissToastsAction{}}, true

	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, k.HelpPage):
		return []types.Action{types.OpenHelpPagerAction{}}, true
	}

	return nil, false
}
