package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is one of the defined values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusClosed
}

// CanTransition reports whether an agent may move a ticket from current to
// next. Closed is terminal; between non-closed states agents move freely so
// priority and sequencing mistakes can be corrected out of band.
func CanTransition(current, next TicketStatus) bool {
	if !next.Valid() {
		return false
	}
	if current.Terminal() {
		return current == next
	}
	return true
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Valid reports whether the priority is one of the defined values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. CreatedBy is immutable after
// creation; AssignedTo may only reference an agent.
type Ticket struct {
	ID          string
	Title       string
	Description string
	CreatedBy   UserRef
	AssignedTo  *UserRef
	Status      TicketStatus
	Priority    TicketPriority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
