package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"sportseek/internal/config"
	"sportseek/internal/domain"
	"sportseek/internal/eventbus"
	"sportseek/internal/logging"
	"sportseek/internal/session"
	"sportseek/internal/ui/input"
	inputtypes "sportseek/internal/ui/input/types"
	"sportseek/internal/ui/logic"
	"sportseek/internal/ui/state"
	"sportseek/internal/ui/views"
)

// Options wires a Model to the rest of the application
type Options struct {
	Transport session.Transport
	Config    *config.Config
	Bus       eventbus.EventBus // optional
	// Context is handed to every network call; cancel it to abort calls in
	// flight. Its logger, if any, is used by the UI.
	Context context.Context
}

// Model is the Bubble Tea model. Update is the only place the session is
// touched, so the session needs no locking.
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	state   *state.AppState
	session *session.Session
	log     zerolog.Logger

	width   int
	height  int
	help    help.Model
	spinner spinner.Model
	keys    inputtypes.KeyMap

	navigator    *logic.Navigator
	renderer     *views.Renderer
	inputHandler *input.Handler

	hasSearched    bool
	editingOptions bool

	// commands produced by session callbacks, flushed at the end of Update
	pending []tea.Cmd
}

// NewModel creates a new UI model with an idle session
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	m := &Model{
		bus:          opts.Bus,
		config:       cfg,
		state:        state.NewAppState(cfg.SearchSettings()),
		log:          logging.Ctx(ctx).With().Str(logging.FieldComponent, "ui").Logger(),
		help:         help.New(),
		spinner:      sp,
		keys:         inputtypes.Keys,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		inputHandler: input.NewWithKeys(inputtypes.Keys),
	}

	sessionOpts := []session.Option{session.WithContext(ctx)}
	if opts.Bus != nil {
		sessionOpts = append(sessionOpts, session.WithEventBus(opts.Bus))
	}
	m.session = session.New(opts.Transport, m, m, sessionOpts...)
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("sportseek")
}

// Notify turns a session notification into a toast
func (m *Model) Notify(n session.Notification) {
	summary := "Success"
	if n.Severity == domain.SeverityError {
		summary = "Error"
	}
	ttl := m.config.ToastDuration()
	id := m.state.AddToast(n.Severity, summary, n.Message, ttl)
	m.pending = append(m.pending, tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	}))
}

// ResultsChanged replaces the result list on screen
func (m *Model) ResultsChanged(items []domain.SearchResultItem) {
	m.hasSearched = true
	m.state.SetResults(items)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}

	case completionMsg:
		if !m.session.Apply(msg.completion) {
			m.log.Debug().Msg("stale completion ignored")
		}
		m.syncSession()

	case toastExpiredMsg:
		m.state.RemoveToast(msg.id)

	case spinner.TickMsg:
		// the tick loop ends on its own once nothing is outstanding
		if m.state.Busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case pagerClosedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("content", msg.what).Msg("pager failed")
			m.Notify(session.Notification{Severity: domain.SeverityError, Message: "Could not open the pager: " + msg.err.Error()})
		}

	default:
		cmds = append(cmds, m.inputHandler.Update(msg))
	}

	m.layout()
	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.log.Trace().Str("action", action.Type()).Msg("processAction")

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.SubmitTextAction:
		m.state.Query = a.Text
		// an empty box is not worth a round of validation errors
		if strings.TrimSpace(a.Text) == "" {
			return nil
		}
		return m.submitSearch()

	case inputtypes.RepeatSearchAction:
		return m.submitSearch()

	case inputtypes.OpenResultAction:
		if a.Index < 0 || a.Index >= len(m.state.Results) {
			return nil
		}
		return openPager("result", m.renderer.Results().RenderDetail(m.state.Results[a.Index]))

	case inputtypes.OpenHelpPagerAction:
		return openPager("help", m.renderer.Help().RenderHelpContentPlain())

	case inputtypes.TriggerIndexAction:
		return m.run(m.session.TriggerIndex())

	case inputtypes.ClearIndexAction:
		return m.run(m.session.ClearIndex())

	case inputtypes.FocusOptionAction:
		if !m.editingOptions {
			m.editingOptions = true
			m.state.OptionsBefore = m.state.Options
			m.state.OptionsChanged = false
		}
		if a.Index >= 0 && a.Index < len(state.OptionFields) {
			m.state.OptionIndex = a.Index
		}

	case inputtypes.AdjustOptionAction:
		field := state.OptionFields[m.state.OptionIndex]
		m.state.Options = logic.AdjustOption(m.state.Options, field, a.Delta)
		m.state.OptionsChanged = m.state.Options != m.state.OptionsBefore

	case inputtypes.CommitOptionsAction:
		m.editingOptions = false
		if m.state.OptionsChanged {
			m.state.OptionsChanged = false
			m.publishOptions()
		}

	case inputtypes.RevertOptionsAction:
		m.editingOptions = false
		m.state.Options = m.state.OptionsBefore
		m.state.OptionsChanged = false

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		m.state.HelpScrollOffset = 0

	case inputtypes.HelpScrollAction:
		offset := m.state.HelpScrollOffset + a.Delta
		maxOffset := m.renderer.Help().HelpLineCount() - 1
		if offset > maxOffset {
			offset = maxOffset
		}
		if offset < 0 {
			offset = 0
		}
		m.state.HelpScrollOffset = offset

	case inputtypes.DismissToastsAction:
		m.state.ClearToasts()

	case inputtypes.QuitAction:
		m.log.Debug().Bool("force", a.Force).Msg("quit requested")
		return tea.Quit

	case inputtypes.UpdateTextAction, inputtypes.CancelTextAction:
		// the draft lives in the text input until it is submitted
	}

	return nil
}

// submitSearch hands the current query and options to the session. A
// rejected query is reported through Notify.
func (m *Model) submitSearch() tea.Cmd {
	task, err := m.session.SubmitSearch(m.state.Query, m.state.Options.Options())
	if err != nil {
		return nil
	}
	return m.run(task)
}

// run starts a session task off the event loop. Its completion comes back as
// a completionMsg.
func (m *Model) run(task session.Task) tea.Cmd {
	if task == nil {
		return nil
	}
	wasBusy := m.state.Busy
	m.syncSession()

	cmds := []tea.Cmd{func() tea.Msg {
		return completionMsg{completion: task()}
	}}
	if !wasBusy {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) syncSession() {
	m.state.Busy = m.session.Busy()
	m.state.Phase = m.session.Phase().String()
	m.state.LastErr = m.session.LastError()
}

func (m *Model) publishOptions() {
	if m.bus == nil {
		return
	}
	o := m.state.Options
	m.bus.Publish(eventbus.OptionsChangedEvent{
		Count:           o.Count,
		SortMethod:      o.SortMethod,
		WeightRelevance: o.WeightRelevance,
		WeightScore:     o.WeightScore,
		WeightTime:      o.WeightTime,
		UsePageRank:     o.UsePageRank,
	})
}

func (m *Model) navigate(direction string) {
	m.syncNavigatorState()

	var sel, off int
	switch direction {
	case "up":
		sel, off = m.navigator.Move(-1)
	case "down":
		sel, off = m.navigator.Move(1)
	case "pageup":
		sel, off = m.navigator.Page(-1)
	case "pagedown":
		sel, off = m.navigator.Page(1)
	case "home":
		sel, off = m.navigator.Home()
	case "end":
		sel, off = m.navigator.End()
	default:
		return
	}
	m.state.SelectedIndex = sel
	m.state.ViewportOffset = off
}

// syncNavigatorState updates the navigator with current model state
func (m *Model) syncNavigatorState() {
	m.navigator.UpdateState(
		m.state.SelectedIndex,
		m.state.ViewportOffset,
		m.state.ViewportHeight,
		len(m.state.Results),
	)
}

// layout recomputes how many cards fit and keeps the cursor on screen
func (m *Model) layout() {
	if m.height > 0 {
		optionsOpen := m.inputHandler.CurrentMode() == inputtypes.ModeOptions
		m.state.ViewportHeight = views.ResultsViewportHeight(m.height, optionsOpen, len(m.state.Toasts))
	}
	m.syncNavigatorState()
	m.state.SelectedIndex = m.navigator.SelectedIndex()
	m.state.ViewportOffset = m.navigator.ViewportOffset()
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	mode := m.inputHandler.CurrentMode()
	vs := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseURL:          m.config.BaseURL(),
		Query:            m.state.Query,
		Options:          m.state.Options,
		OptionsOpen:      mode == inputtypes.ModeOptions,
		OptionIndex:      m.state.OptionIndex,
		Results:          m.state.Results,
		HasSearched:      m.hasSearched,
		SelectedIndex:    m.state.SelectedIndex,
		ViewportOffset:   m.state.ViewportOffset,
		ViewportHeight:   m.state.ViewportHeight,
		Busy:             m.state.Busy,
		Phase:            m.state.Phase,
		Toasts:           m.state.Toasts,
		ConfirmClear:     mode == inputtypes.ModeConfirmClear,
		ShowHelp:         m.state.ShowHelp,
		HelpScrollOffset: m.state.HelpScrollOffset,
		HelpBar:          m.helpBar(mode),
	}
	if m.state.Busy {
		vs.Spinner = m.spinner.View()
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.Editing = true
		vs.QueryInput = ti.View()
		vs.Prompt = m.inputHandler.Prompt()
	}

	return m.renderer.Render(vs)
}

// helpBar renders the key hints for the active mode
func (m *Model) helpBar(mode inputtypes.Mode) string {
	switch mode {
	case inputtypes.ModeQuery:
		return m.help.ShortHelpView(m.keys.QueryHelp())
	case inputtypes.ModeOptions:
		return m.help.ShortHelpView(m.keys.OptionsHelp())
	case inputtypes.ModeConfirmClear:
		return m.help.ShortHelpView(m.keys.ConfirmHelp())
	}
	return m.help.View(m.keys)
}

// State exposes the application state, read-only by convention
func (m *Model) State() *state.AppState {
	return m.state
}

// Session exposes the request session
func (m *Model) Session() *session.Session {
	return m.session
}
