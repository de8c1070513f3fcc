package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sportseek/internal/ui/input/types"
)

// historySize bounds the number of remembered queries
const historySize = 50

// QueryMode edits the search query. Submitted queries are remembered and can
// be recalled with Older/Newer; the text being typed is kept as a draft while
// browsing.
type QueryMode struct {
	keys      types.KeyMap
	textInput *textinput.Model

	history []string // oldest first
	cursor  int      // len(history) while editing the draft
	draft   string
}

func NewQueryMode(ti *textinput.Model, keys types.KeyMap) *QueryMode {
	return &QueryMode{keys: keys, textInput: ti}
}

func (m *QueryMode) Name() string {
	return "query"
}

func (m *QueryMode) Prompt() string {
	return "Search: "
}

// Enter resumes editing the current query rather than starting empty
func (m *QueryMode) Enter(ctx types.Context) []types.Action {
	m.cursor = len(m.history)
	m.draft = ""
	if m.textInput != nil {
		m.textInput.SetValue(ctx.QueryText())
		m.textInput.CursorEnd()
		m.textInput.Focus()
		m.textInput.Prompt = "" // rendered by the view
	}
	return nil
}

func (m *QueryMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Cancel):
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case key.Matches(msg, m.keys.Accept):
		text := m.value()
		m.remember(text)
		return []types.Action{
			types.SubmitTextAction{Text: text, Mode: types.ModeQuery},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case key.Matches(msg, m.keys.Older):
		return m.recall(-1), true

	case key.Matches(msg, m.keys.Newer):
		return m.recall(1), true
	}

	// the handler feeds everything else to the text input
	return nil, false
}

// recall moves through the history by delta and shows the entry, or the
// draft once past the newest one
func (m *QueryMode) recall(delta int) []types.Action {
	next := m.cursor + delta
	if next < 0 || next > len(m.history) || m.textInput == nil {
		return nil
	}
	if m.cursor == len(m.history) {
		m.draft = m.textInput.Value()
	}
	m.cursor = next

	text := m.draft
	if next < len(m.history) {
		text = m.history[next]
	}
	m.textInput.SetValue(text)
	m.textInput.CursorEnd()
	return []types.Action{types.UpdateTextAction{Text: text}}
}

func (m *QueryMode) remember(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if n := len(m.history); n > 0 && m.history[n-1] == text {
		return
	}
	m.history = append(m.history, text)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func (m *QueryMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return m.textInput.Value()
}
