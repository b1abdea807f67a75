package events

import (
	"time"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventCommentAdded        EventType = "comment_added"
	EventTicketReminderDue   EventType = "ticket_reminder_due"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries everything the notification side needs so
// handlers never reach back into the store.
type TicketCreatedPayload struct {
	Title        string                `json:"title"`
	Priority     domain.TicketPriority `json:"priority"`
	CreatorEmail string                `json:"creator_email"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Title        string              `json:"title"`
	OldStatus    domain.TicketStatus `json:"old_status"`
	NewStatus    domain.TicketStatus `json:"new_status"`
	CreatorEmail string              `json:"creator_email"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID    string      `json:"comment_id"`
	Title        string      `json:"title"`
	Message      string      `json:"message"`
	AuthorRole   domain.Role `json:"author_role"`
	CreatorEmail string      `json:"creator_email"`
}

// TicketReminderDuePayload payload. Recipients is the assignee, or every
// agent when the ticket is unassigned.
type TicketReminderDuePayload struct {
	Title      string                `json:"title"`
	Priority   domain.TicketPriority `json:"priority"`
	ClientName string                `json:"client_name"`
	Assigned   bool                  `json:"assigned"`
	Recipients []string              `json:"recipients"`
}
