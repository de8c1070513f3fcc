package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sportseek/internal/ui/input/types"
)

// ConfirmMode asks before the index is cleared
type ConfirmMode struct {
	keys types.KeyMap
}

func NewConfirmMode(keys types.KeyMap) *ConfirmMode {
	return &ConfirmMode{keys: keys}
}

func (m *ConfirmMode) Name() string {
	return "confirm-clear"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Yes):
		return []types.Action{
			types.ClearIndexAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case key.Matches(msg, m.keys.No):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	// Swallow everything else until the user answers
	return nil, true
}
