package dto

import (
	"time"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest payload; absent fields are left unchanged.
type UpdateTicketRequest struct {
	Status     *domain.TicketStatus   `json:"status"`
	Priority   *domain.TicketPriority `json:"priority"`
	AssignedTo *string                `json:"assignedTo"`
}

// TicketResponse provides full ticket info with resolved references.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	CreatedBy   UserSummary           `json:"createdBy"`
	AssignedTo  *UserSummary          `json:"assignedTo,omitempty"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}
