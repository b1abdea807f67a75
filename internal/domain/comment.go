package domain

import "time"

// Comment is a single entry in a ticket thread. Comments are immutable once
// created; there is no edit or delete operation.
type Comment struct {
	ID        string
	TicketID  string
	Author    UserRef
	Message   string
	CreatedAt time.Time
}
