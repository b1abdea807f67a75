package dto

import "time"

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	TicketID string `json:"ticketId"`
	Message  string `json:"message"`
}

// CommentResponse represents one thread entry with its author resolved.
type CommentResponse struct {
	ID        string      `json:"id"`
	TicketID  string      `json:"ticketId"`
	Author    UserSummary `json:"author"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"createdAt"`
}
