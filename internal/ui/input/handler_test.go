package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportseek/internal/ui/input/types"
)

type fakeContext struct {
	index    int
	total    int
	query    string
	option   int
	showHelp bool
}

func (c *fakeContext) CurrentIndex() int { return c.index }
func (c *fakeContext) TotalItems() int { return c.total }
func (c *fakeContext) HasSelection() bool { return c.index < c.total }
func (c *fakeContext) QueryText() string { return c.query }
func (c *fakeContext) OptionIndex() int { return c.option }
func (c *fakeContext) OptionCount() int { return 6 }
func (c *fakeContext) ShowingHelp() bool { return c.showHelp }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeNavigation(t *testing.T) {
	h := New()
	ctx := &fakeContext{total: 3}

	tests := []struct {
		msg  tea.KeyMsg
		want types.Action
	}{
		{runes("j"), types.NavigateAction{Direction: "down"}},
		{tea.KeyMsg{Type: tea.KeyDown}, types.NavigateAction{Direction: "down"}},
		{runes("k"), types.NavigateAction{Direction: "up"}},
		{tea.KeyMsg{Type: tea.KeyPgDown}, types.NavigateAction{Direction: "pagedown"}},
		{runes("G"), types.NavigateAction{Direction: "end"}},
		{runes("g"), types.NavigateAction{Direction: "home"}},
		{tea.KeyMsg{Type: tea.KeyEnter}, types.OpenResultAction{Index: 0}},
		{runes("t"), types.TriggerIndexAction{}},
		{runes("r"), types.RepeatSearchAction{}},
		{runes("?"), types.ToggleHelpAction{}},
		{runes("q"), types.QuitAction{Force: false}},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, types.QuitAction{Force: true}},
		{tea.KeyMsg{Type: tea.KeyEsc}, types.DismissToastsAction{}},
	}

	for _, tt := range tests {
		actions, _ := h.HandleKey(tt.msg, ctx)
		require.Len(t, actions, 1, tt.msg.String())
		assert.Equal(t, tt.want, actions[0], tt.msg.String())
		assert.Equal(t, types.ModeNormal, h.CurrentMode())
	}
}

func TestOpenWithoutResultsDoesNothing(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, &fakeContext{})
	assert.Empty(t, actions)
}

func TestQueryModeTyping(t *testing.T) {
	h := New()
	ctx := &fakeContext{query: "foot"}

	_, cmd := h.HandleKey(runes("/"), ctx)
	assert.NotNil(t, cmd, "entering a text mode starts the cursor blink")
	require.Equal(t, types.ModeQuery, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "foot", h.TextInput().Value(), "editing resumes the previous query")
	assert.Equal(t, "Search: ", h.Prompt())

	actions, _ := h.HandleKey(runes("b"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "footb"}, actions[0])

	// keys bound in normal mode are plain text here
	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, types.UpdateTextAction{Text: "footbq"}, actions[0])
	assert.Equal(t, types.ModeQuery, h.CurrentMode())

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.SubmitTextAction{Text: "footbq", Mode: types.ModeQuery}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestQueryModeCancel(t *testing.T) {
	h := New()
	ctx := &fakeContext{}
	h.HandleKey(runes("/"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.CancelTextAction{}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestQueryModeHistory(t *testing.T) {
	h := New()
	ctx := &fakeContext{}
	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	for _, q := range []string{"derby", "derby", "  ", "transfer news"} {
		h.HandleKey(runes("/"), ctx)
		h.TextInput().SetValue(q)
		h.HandleKey(enter, ctx)
	}

	h.HandleKey(runes("/"), ctx)
	h.HandleKey(runes("v"), ctx)

	actions, _ := h.HandleKey(up, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "transfer news"}, actions[0])

	actions, _ = h.HandleKey(up, ctx)
	assert.Equal(t, types.UpdateTextAction{Text: "derby"}, actions[0], "repeats and blanks are not remembered")

	actions, _ = h.HandleKey(up, ctx)
	assert.Empty(t, actions, "stops at the oldest entry")
	assert.Equal(t, "derby", h.TextInput().Value())

	h.HandleKey(down, ctx)
	actions, _ = h.HandleKey(down, ctx)
	assert.Equal(t, types.UpdateTextAction{Text: "v"}, actions[0], "the draft comes back")

	actions, _ = h.HandleKey(down, ctx)
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeQuery, h.CurrentMode())
}

func TestOptionsMode(t *testing.T) {
	h := New()
	ctx := &fakeContext{option: 0}

	actions, _ := h.HandleKey(runes("o"), ctx)
	require.Equal(t, types.ModeOptions, h.CurrentMode())
	assert.Equal(t, []types.Action{types.FocusOptionAction{Index: 0}}, actions)

	actions, _ = h.HandleKey(runes("k"), ctx)
	assert.Equal(t, []types.Action{types.FocusOptionAction{Index: 5}}, actions, "focus wraps")

	ctx.option = 5
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	assert.Equal(t, []types.Action{types.FocusOptionAction{Index: 0}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}, ctx)
	assert.Equal(t, []types.Action{types.AdjustOptionAction{Delta: -1}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ctx)
	assert.Equal(t, []types.Action{types.AdjustOptionAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(runes("x"), ctx)
	assert.Empty(t, actions, "unbound keys are swallowed")
	assert.Equal(t, types.ModeOptions, h.CurrentMode())

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.CommitOptionsAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	h.HandleKey(runes("o"), ctx)
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.RevertOptionsAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestConfirmClear(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	h.HandleKey(runes("X"), ctx)
	require.Equal(t, types.ModeConfirmClear, h.CurrentMode())

	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeConfirmClear, h.CurrentMode())

	actions, _ = h.HandleKey(runes("n"), ctx)
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	h.HandleKey(runes("X"), ctx)
	actions, _ = h.HandleKey(runes("y"), ctx)
	assert.Equal(t, []types.Action{types.ClearIndexAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestHelpOverlayCapturesKeys(t *testing.T) {
	h := New()
	ctx := &fakeContext{showHelp: true, total: 3}

	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.HelpScrollAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(runes("t"), ctx)
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
}

func TestProgrammaticModeChange(t *testing.T) {
	h := New()
	_, cmd := h.ChangeMode(types.ModeQuery, &fakeContext{query: "nba"})
	assert.NotNil(t, cmd)
	assert.Equal(t, "nba", h.TextInput().Value())
	assert.True(t, h.TextInput().Focused())
}
