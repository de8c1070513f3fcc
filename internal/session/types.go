package session

import (
	"context"

	"sportseek/internal/domain"
)

// Phase is the lifecycle state of a Session
type Phase int

const (
	Idle Phase = iota
	Loading
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// IndexOp distinguishes the two index operations
type IndexOp int

const (
	OpTrigger IndexOp = iota
	OpClear
)

func (o IndexOp) String() string {
	if o == OpClear {
		return "clear"
	}
	return "trigger"
}

// Transport is the subset of transport.Client a Session needs
type Transport interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
	TriggerIndex(ctx context.Context) (*domain.ApiResponse, error)
	ClearIndex(ctx context.Context) (*domain.ApiResponse, error)
}

// Notification is a success or failure summary for one user action
type Notification struct {
	Severity domain.Severity
	Message  string
}

// NotificationSink receives one Notification per accepted user action
type NotificationSink interface {
	Notify(n Notification)
}

// NotifyFunc adapts a function to NotificationSink
type NotifyFunc func(Notification)

func (f NotifyFunc) Notify(n Notification) { f(n) }

// ResultsListener receives the authoritative result list whenever it changes
type ResultsListener interface {
	ResultsChanged(items []domain.SearchResultItem)
}

// ResultsFunc adapts a function to ResultsListener
type ResultsFunc func([]domain.SearchResultItem)

func (f ResultsFunc) ResultsChanged(items []domain.SearchResultItem) { f(items) }

// Completion is the outcome of a Task, fed back into Session.Apply
type Completion interface {
	completion()
}

// SearchCompleted is produced by a search Task
type SearchCompleted struct {
	Epoch    uint64
	Response *domain.SearchResponse
	Err      error
}

// IndexCompleted is produced by a trigger or clear Task
type IndexCompleted struct {
	Op       IndexOp
	Epoch    uint64
	Response *domain.ApiResponse
	Err      error
}

func (SearchCompleted) completion() {}
func (IndexCompleted) completion() {}

// Task performs one network call off the event loop. It must not touch the
// Session; its result goes back through Apply.
type Task func() Completion
