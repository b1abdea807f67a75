package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

func TestViewAndDeleteChecks(t *testing.T) {
	owner := &domain.User{ID: "user-1", Role: domain.RoleClient}
	other := &domain.User{ID: "user-2", Role: domain.RoleClient}
	agent := &domain.User{ID: "user-3", Role: domain.RoleAgent}

	ticket := &domain.Ticket{ID: "ticket-1", CreatedBy: domain.RefTo("user-1")}

	require.True(t, CanViewTicket(owner, ticket))
	require.False(t, CanViewTicket(other, ticket))
	require.True(t, CanViewTicket(agent, ticket))

	require.True(t, CanDeleteTicket(owner, ticket))
	require.False(t, CanDeleteTicket(other, ticket))
	require.True(t, CanDeleteTicket(agent, ticket))

	require.False(t, CanViewTicket(nil, ticket))
	require.False(t, CanViewTicket(owner, nil))
}

// Ownership must compare identifiers regardless of whether the creator
// reference arrives raw or resolved.
func TestOwnershipIgnoresReferenceShape(t *testing.T) {
	owner := &domain.User{ID: "user-1", Role: domain.RoleClient}

	rawRef := &domain.Ticket{CreatedBy: domain.RefTo("user-1")}
	resolvedRef := &domain.Ticket{CreatedBy: domain.ResolvedRef(owner)}

	require.True(t, CanViewTicket(owner, rawRef))
	require.True(t, CanViewTicket(owner, resolvedRef))
	require.True(t, CanCommentOn(owner, rawRef))
	require.True(t, CanCommentOn(owner, resolvedRef))
}

func TestUpdateIsAgentOnly(t *testing.T) {
	require.True(t, CanUpdateTicket(&domain.User{ID: "user-1", Role: domain.RoleAgent}))
	require.False(t, CanUpdateTicket(&domain.User{ID: "user-2", Role: domain.RoleClient}))
	require.False(t, CanUpdateTicket(nil))
}
