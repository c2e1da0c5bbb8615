package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQueryAnswered     EventType = "query_answered"
	EventDirectoryReloaded EventType = "directory_reloaded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps payload with a fresh id and the current time.
func NewEvent(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// QueryAnsweredPayload payload. The raw query text is not carried.
type QueryAnsweredPayload struct {
	PrimaryIntent domain.Intent   `json:"primary_intent"`
	Intents       []domain.Intent `json:"intents"`
	NameCount     int             `json:"name_count"`
	Failed        bool            `json:"failed"`
	Duration      time.Duration   `json:"duration"`
}

// DirectoryReloadedPayload payload.
type DirectoryReloadedPayload struct {
	Employees int    `json:"employees"`
	Error     string `json:"error,omitempty"`
}
