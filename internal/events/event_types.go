package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginRejected  EventType = "login_rejected"
	EventEntityCreated  EventType = "entity_created"
	EventEntityUpdated  EventType = "entity_updated"
	EventEntityDeleted  EventType = "entity_deleted"
)

// Event represents an auditable action emitted by services and handlers.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Entity    string    `json:"entity,omitempty"`
	EntityID  string    `json:"entity_id,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// LoginPayload describes a login attempt. Reason is set only on rejection and
// is never returned to the caller.
type LoginPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}
