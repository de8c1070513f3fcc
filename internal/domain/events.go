package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchDispatched EventType = "SearchDispatched"
	EventIndexRequested   EventType = "IndexRequested"
	EventResultsChanged   EventType = "ResultsChanged"
	EventNotification     EventType = "Notification"
	EventOptionsChanged   EventType = "OptionsChanged"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// Severity classifies a user facing notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// SearchDispatchedEvent is emitted when a search is accepted and sent
type SearchDispatchedEvent struct {
	Epoch   uint64
	Request SearchRequest
}

func (e SearchDispatchedEvent) Type() EventType { return EventSearchDispatched }

// IndexRequestedEvent is emitted when a trigger or clear is accepted
type IndexRequestedEvent struct {
	Epoch uint64
	Op    string
}

func (e IndexRequestedEvent) Type() EventType { return EventIndexRequested }

// ResultsChangedEvent carries the authoritative result list
type ResultsChangedEvent struct {
	Items []SearchResultItem
}

func (e ResultsChangedEvent) Type() EventType { return EventResultsChanged }

// NotificationEvent is a success or failure summary for one user action
type NotificationEvent struct {
	Severity Severity
	Message  string
}

func (e NotificationEvent) Type() EventType { return EventNotification }

// OptionsChangedEvent is emitted when the user edits search options
type OptionsChangedEvent struct {
	Count           int
	SortMethod      SortMethod
	WeightRelevance float64
	WeightScore     float64
	WeightTime      float64
	UsePageRank     bool
}

func (e OptionsChangedEvent) Type() EventType { return EventOptionsChanged }

// ConfigLoadedEvent is emitted once the configuration, including command
// line overrides, is in effect
type ConfigLoadedEvent struct {
	Path        string
	BaseURL     string
	Environment string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
