package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"sportseek/internal/domain"
	"sportseek/internal/eventbus"
	"sportseek/internal/logging"
	"sportseek/internal/request"
)

var errNoResponse = errors.New("backend returned no response")

// Option customises a Session
type Option func(*Session)

// WithBuilder replaces the default request builder
func WithBuilder(b *request.Builder) Option {
	return func(s *Session) { s.builder = b }
}

// WithEventBus mirrors dispatches, result changes and notifications onto bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(s *Session) { s.bus = bus }
}

// WithContext sets the parent context handed to every Task. Cancelling it
// aborts calls still in flight, e.g. at program exit.
func WithContext(ctx context.Context) Option {
	return func(s *Session) { s.ctx = ctx }
}

// WithLogger sets the session logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session owns the request lifecycle for one UI. It is not safe for
// concurrent use: every method must be called from the same event loop.
// Network calls happen inside Tasks, whose Completions come back via Apply.
type Session struct {
	transport Transport
	builder   *request.Builder
	sink      NotificationSink
	results   ResultsListener
	bus       eventbus.EventBus
	ctx       context.Context
	log       zerolog.Logger

	phase       Phase
	lastResults []domain.SearchResultItem
	lastError   error
	lastRequest *domain.SearchRequest

	// epochs identify the newest accepted request of each kind; a completion
	// carrying any other epoch is stale
	searchEpoch   uint64
	indexEpoch    uint64
	searchPending bool
	indexPending  bool
}

// New creates an idle session. A nil sink or listener is allowed.
func New(t Transport, sink NotificationSink, results ResultsListener, opts ...Option) *Session {
	s := &Session{
		transport:   t,
		sink:        sink,
		results:     results,
		ctx:         context.Background(),
		log:         logging.Component("session"),
		lastResults: []domain.SearchResultItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.builder == nil {
		s.builder = request.NewBuilder()
	}
	return s
}

// SubmitSearch validates the input and, if it is acceptable, supersedes any
// search in flight and returns the Task that performs the call. A validation
// failure is notified and returned; the phase does not change.
func (s *Session) SubmitSearch(rawQuery string, opts request.Options) (Task, error) {
	req, err := s.builder.Build(rawQuery, opts)
	if err != nil {
		s.log.Debug().Err(err).Msg("search rejected")
		s.notify(domain.SeverityError, err.Error())
		return nil, err
	}

	s.searchEpoch++
	epoch := s.searchEpoch
	s.searchPending = true
	s.lastRequest = &req
	s.phase = Loading

	s.log.Debug().Uint64(logging.FieldEpoch, epoch).Str("query", req.Query).Msg("search dispatched")
	s.publish(domain.SearchDispatchedEvent{Epoch: epoch, Request: req})

	ctx, t := s.ctx, s.transport
	return func() Completion {
		resp, err := t.Search(ctx, req)
		return SearchCompleted{Epoch: epoch, Response: resp, Err: err}
	}, nil
}

// TriggerIndex returns the Task that asks the backend to build its index
func (s *Session) TriggerIndex() Task {
	return s.dispatchIndex(OpTrigger)
}

// ClearIndex returns the Task that asks the backend to drop its index
func (s *Session) ClearIndex() Task {
	return s.dispatchIndex(OpClear)
}

func (s *Session) dispatchIndex(op IndexOp) Task {
	s.indexEpoch++
	epoch := s.indexEpoch
	s.indexPending = true
	s.phase = Loading

	s.log.Debug().Uint64(logging.FieldEpoch, epoch).Stringer("op", op).Msg("index operation dispatched")
	s.publish(domain.IndexRequestedEvent{Epoch: epoch, Op: op.String()})

	ctx, t := s.ctx, s.transport
	return func() Completion {
		var resp *domain.ApiResponse
		var err error
		if op == OpClear {
			resp, err = t.ClearIndex(ctx)
		} else {
			resp, err = t.TriggerIndex(ctx)
		}
		return IndexCompleted{Op: op, Epoch: epoch, Response: resp, Err: err}
	}
}

// Apply folds a Task's Completion into the session. It reports whether the
// completion was applied; stale completions are dropped without any
// notification or state change.
func (s *Session) Apply(c Completion) bool {
	switch c := c.(type) {
	case SearchCompleted:
		return s.applySearch(c)
	case IndexCompleted:
		return s.applyIndex(c)
	}
	return false
}

func (s *Session) applySearch(c SearchCompleted) bool {
	if c.Epoch != s.searchEpoch || !s.searchPending {
		s.log.Debug().Uint64(logging.FieldEpoch, c.Epoch).Uint64("current", s.searchEpoch).Msg("discarding stale search completion")
		return false
	}
	s.searchPending = false

	err := c.Err
	if err == nil && c.Response == nil {
		err = errNoResponse
	}
	if err != nil {
		s.phase = Failed
		s.lastError = err
		s.log.Warn().Err(err).Uint64(logging.FieldEpoch, c.Epoch).Msg("search failed")
		s.notify(domain.SeverityError, fmt.Sprintf("Failed to fetch search results: %v", err))
		return true
	}

	items := c.Response.Data
	if items == nil {
		items = []domain.SearchResultItem{}
	}
	s.phase = Succeeded
	s.lastError = nil
	s.lastResults = items
	s.log.Info().Uint64(logging.FieldEpoch, c.Epoch).Int("results", len(items)).Msg("search succeeded")

	s.emitResults()
	msg := c.Response.Message
	if msg == "" {
		msg = fmt.Sprintf("Found %d results", len(items))
	}
	s.notify(domain.SeveritySuccess, msg)
	return true
}

func (s *Session) applyIndex(c IndexCompleted) bool {
	if c.Epoch != s.indexEpoch || !s.indexPending {
		s.log.Debug().Uint64(logging.FieldEpoch, c.Epoch).Uint64("current", s.indexEpoch).Msg("discarding stale index completion")
		return false
	}
	s.indexPending = false

	err := c.Err
	if err == nil && c.Response == nil {
		err = errNoResponse
	}
	if err != nil {
		s.phase = Failed
		s.lastError = err
		s.log.Warn().Err(err).Stringer("op", c.Op).Msg("index operation failed")
		if c.Op == OpClear {
			s.notify(domain.SeverityError, fmt.Sprintf("Failed to clear index: %v", err))
		} else {
			s.notify(domain.SeverityError, fmt.Sprintf("Failed to trigger indexer: %v", err))
		}
		return true
	}

	s.phase = Succeeded
	s.lastError = nil
	msg := c.Response.Message
	if c.Op == OpClear {
		s.lastResults = []domain.SearchResultItem{}
		s.emitResults()
		if msg == "" {
			msg = "Index cleared"
		}
	} else if msg == "" {
		msg = "Indexer triggered"
	}
	s.log.Info().Stringer("op", c.Op).Msg("index operation succeeded")
	s.notify(domain.SeveritySuccess, msg)
	return true
}

func (s *Session) emitResults() {
	if s.results != nil {
		s.results.ResultsChanged(s.Results())
	}
	s.publish(domain.ResultsChangedEvent{Items: s.Results()})
}

func (s *Session) notify(sev domain.Severity, msg string) {
	if s.sink != nil {
		s.sink.Notify(Notification{Severity: sev, Message: msg})
	}
	s.publish(domain.NotificationEvent{Severity: sev, Message: msg})
}

func (s *Session) publish(e domain.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// Phase reports Loading while any accepted operation is outstanding,
// otherwise the outcome of the last completion applied
func (s *Session) Phase() Phase {
	if s.Busy() {
		return Loading
	}
	return s.phase
}

// Results returns a copy of the last applied result list
func (s *Session) Results() []domain.SearchResultItem {
	out := make([]domain.SearchResultItem, len(s.lastResults))
	copy(out, s.lastResults)
	return out
}

// LastError returns the error of the last failed operation, cleared on success
func (s *Session) LastError() error { return s.lastError }

// LastRequest returns the most recently accepted search request, if any
func (s *Session) LastRequest() (domain.SearchRequest, bool) {
	if s.lastRequest == nil {
		return domain.SearchRequest{}, false
	}
	return *s.lastRequest, true
}

// Busy reports whether any accepted operation has not completed yet
func (s *Session) Busy() bool { return s.searchPending || s.indexPending }

// SearchEpoch returns the epoch of the newest accepted search
func (s *Session) SearchEpoch() uint64 { return s.searchEpoch }

// IndexEpoch returns the epoch of the newest accepted index operation
func (s *Session) IndexEpoch() uint64 { return s.indexEpoch }
