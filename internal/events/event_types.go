package events

import (
	"time"

	"github.com/pytracker/tracker-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketUpdated  EventType = "ticket_updated"
	EventTicketDeleted  EventType = "ticket_deleted"
	EventProjectCreated EventType = "project_created"
	EventUserRegistered EventType = "user_registered"
)

// Event represents a domain event emitted after a store write commits.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ProjectID string                `json:"project_id"`
	Title     string                `json:"title"`
	Status    domain.TicketStatus   `json:"status"`
	Priority  domain.TicketPriority `json:"priority"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Status   domain.TicketStatus   `json:"status"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	ProjectID string `json:"project_id"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}
