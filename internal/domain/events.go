package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSubmitted EventType = "SearchSubmitted"
	EventFetchStarted    EventType = "FetchStarted"
	EventFetchSucceeded  EventType = "FetchSucceeded"
	EventFetchFailed     EventType = "FetchFailed"
	EventFetchDropped    EventType = "FetchDropped"
	EventStaleResponse   EventType = "StaleResponse"
	EventStoryRemoved    EventType = "StoryRemoved"
	EventTermPersisted   EventType = "TermPersisted"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSubmittedEvent is emitted when a fresh search is accepted
type SearchSubmittedEvent struct {
	Term string
	URL  string
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// FetchStartedEvent is emitted right before a request goes out
type FetchStartedEvent struct {
	RequestID string
	URL       string
	Page      int
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// FetchSucceededEvent is emitted when a page of stories was applied
type FetchSucceededEvent struct {
	RequestID string
	URL       string
	Page      int
	Hits      int
}

func (e FetchSucceededEvent) Type() EventType { return EventFetchSucceeded }

// FetchFailedEvent is emitted when a request failed for any reason
type FetchFailedEvent struct {
	RequestID string
	URL       string
	Err       error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// FetchDroppedEvent is emitted when a fetch is refused by the in-flight guard
type FetchDroppedEvent struct {
	Reason string
}

func (e FetchDroppedEvent) Type() EventType { return EventFetchDropped }

// StaleResponseEvent is emitted when a response arrives for a request that is
// no longer the in-flight one
type StaleResponseEvent struct {
	RequestID string
	URL       string
}

func (e StaleResponseEvent) Type() EventType { return EventStaleResponse }

// StoryRemovedEvent is emitted when the user dismisses a story
type StoryRemovedEvent struct {
	ID string
}

func (e StoryRemovedEvent) Type() EventType { return EventStoryRemoved }

// TermPersistedEvent is emitted after the search term was written to the store
type TermPersistedEvent struct {
	Term string
}

func (e TermPersistedEvent) Type() EventType { return EventTermPersisted }

// ErrorEvent is emitted when a non-fatal error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
