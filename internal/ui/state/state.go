package state

import (
	"time"

	"sportseek/internal/domain"
	"sportseek/internal/request"
)

// OptionField identifies one editable search option
type OptionField int

const (
	OptionSort OptionField = iota
	OptionPageRank
	OptionCount
	OptionWeightRelevance
	OptionWeightScore
	OptionWeightTime
)

// OptionFields lists the options panel rows in display order
var OptionFields = []OptionField{
	OptionSort,
	OptionPageRank,
	OptionCount,
	OptionWeightRelevance,
	OptionWeightScore,
	OptionWeightTime,
}

func (f OptionField) Label() string {
	switch f {
	case OptionSort:
		return "Sort by"
	case OptionPageRank:
		return "PageRank"
	case OptionCount:
		return "Results"
	case OptionWeightRelevance:
		return "Relevance weight"
	case OptionWeightScore:
		return "Score weight"
	case OptionWeightTime:
		return "Time weight"
	}
	return ""
}

// Toast is a transient notification shown over the result list
type Toast struct {
	ID       int
	Severity domain.Severity
	Summary  string
	Detail   string
	Expires  time.Time
}

// AppState contains all the application state
type AppState struct {
	// Search input
	Query   string           // text in the query box
	Options request.Settings // current search options

	// Results as last applied by the session
	Results []domain.SearchResultItem

	// Selection state
	SelectedIndex  int // currently selected result
	ViewportOffset int // first visible result
	ViewportHeight int // result cards that fit on screen

	// Options panel
	OptionIndex    int              // focused row in the options panel
	OptionsBefore  request.Settings // options when the panel was opened
	OptionsChanged bool             // edited since the panel was opened

	// Operation state
	Busy    bool  // an accepted operation is outstanding
	Phase   string
	LastErr error

	// UI state
	Toasts           []Toast
	NextToastID      int
	ShowHelp         bool
	HelpScrollOffset int
	ConfirmClear     bool
	StatusMessage    string
}

// NewAppState creates a new application state
func NewAppState(opts request.Settings) *AppState {
	return &AppState{
		Options:        opts,
		Results:        []domain.SearchResultItem{},
		ViewportHeight: 5,
		Phase:          "idle",
	}
}

// SelectedResult returns the result under the cursor
func (s *AppState) SelectedResult() (domain.SearchResultItem, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Results) {
		return domain.SearchResultItem{}, false
	}
	return s.Results[s.SelectedIndex], true
}

// SetResults replaces the result list and resets the cursor
func (s *AppState) SetResults(items []domain.SearchResultItem) {
	s.Results = items
	s.SelectedIndex = 0
	s.ViewportOffset = 0
}

// AddToast appends a toast expiring after ttl and returns its id
func (s *AppState) AddToast(sev domain.Severity, summary, detail string, ttl time.Duration) int {
	s.NextToastID++
	s.Toasts = append(s.Toasts, Toast{
		ID:       s.NextToastID,
		Severity: sev,
		Summary:  summary,
		Detail:   detail,
		Expires:  time.Now().Add(ttl),
	})
	return s.NextToastID
}

// RemoveToast drops the toast with the given id, if still present
func (s *AppState) RemoveToast(id int) {
	for i, t := range s.Toasts {
		if t.ID == id {
			s.Toasts = append(s.Toasts[:i:i], s.Toasts[i+1:]...)
			return
		}
	}
}

// ClearToasts dismisses every toast
func (s *AppState) ClearToasts() {
	s.Toasts = nil
}
