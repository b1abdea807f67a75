// Package policy centralizes the access checks shared by the ticket and
// comment workflows: ownership for clients, unrestricted access for agents.
package policy

import "github.com/helpdeskpro/helpdesk-service/internal/domain"

// CanViewTicket reports whether the actor may read the ticket and its
// comment thread. Agents may read any ticket; clients only their own.
func CanViewTicket(actor *domain.User, ticket *domain.Ticket) bool {
	if actor == nil || ticket == nil {
		return false
	}
	if actor.Role == domain.RoleAgent {
		return true
	}
	return ticket.CreatedBy.ID() == actor.ID
}

// CanUpdateTicket reports whether the actor may change status, priority or
// assignment. Agent only.
func CanUpdateTicket(actor *domain.User) bool {
	return actor != nil && actor.Role == domain.RoleAgent
}

// CanDeleteTicket reports whether the actor may delete the ticket: any
// agent, or the client who created it.
func CanDeleteTicket(actor *domain.User, ticket *domain.Ticket) bool {
	if actor == nil || ticket == nil {
		return false
	}
	if actor.Role == domain.RoleAgent {
		return true
	}
	return ticket.CreatedBy.ID() == actor.ID
}

// CanCommentOn mirrors the read check: whoever may view a ticket may
// comment on it.
func CanCommentOn(actor *domain.User, ticket *domain.Ticket) bool {
	return CanViewTicket(actor, ticket)
}
