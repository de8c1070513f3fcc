package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sportseek/internal/ui/input/types"
)

// OptionsMode edits the search options panel. Changes apply immediately;
// esc restores the values from when the panel was opened.
type OptionsMode struct {
	keys types.KeyMap
}

func NewOptionsMode(keys types.KeyMap) *OptionsMode {
	return &OptionsMode{keys: keys}
}

func (m *OptionsMode) Name() string {
	return "options"
}

func (m *OptionsMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.FocusOptionAction{Index: ctx.OptionIndex()}}
}

func (m *OptionsMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *OptionsMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	n := ctx.OptionCount()

	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, k.Cancel), key.Matches(msg, k.Quit):
		return []types.Action{
			types.RevertOptionsAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case key.Matches(msg, k.Accept), key.Matches(msg, k.Options):
		return []types.Action{
			types.CommitOptionsAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case key.Matches(msg, k.Up):
		idx := ctx.OptionIndex() - 1
		if idx < 0 {
			idx = n - 1
		}
		return []types.Action{types.FocusOptionAction{Index: idx}}, true

	case key.Matches(msg, k.Down):
		idx := ctx.OptionIndex() + 1
		if idx >= n {
			idx = 0
		}
		return []types.Action{types.FocusOptionAction{Index: idx}}, true

	case key.Matches(msg, k.Decrease):
		return []types.Action{types.AdjustOptionAction{Delta: -1}}, true

	case key.Matches(msg, k.Increase), key.Matches(msg, k.Toggle):
		return []types.Action{types.AdjustOptionAction{Delta: 1}}, true
	}

	return nil, true
}
