package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

func TestAddCommentRequiresMessage(t *testing.T) {
	h := newHarness(t)
	client := h.client("Ana", "ana@example.com")

	ticket, err := h.ticketSvc.Create(context.Background(), client, TicketCreateInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = h.commentSvc.Add(context.Background(), client, ticket.ID, "   ")
	requireDomainStatus(t, err, 400)

	comments, err := h.commentSvc.List(context.Background(), client, ticket.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestAddCommentOnMissingTicket(t *testing.T) {
	h := newHarness(t)
	client := h.client("Ana", "ana@example.com")

	_, err := h.commentSvc.Add(context.Background(), client, "missing", "hello")
	requireDomainStatus(t, err, 404)
}

func TestCommentAccessMirrorsTicketView(t *testing.T) {
	h := newHarness(t)
	owner := h.client("Ana", "ana@example.com")
	other := h.client("Eve", "eve@example.com")
	agent := h.agent("Bo", "bo@example.com")

	ticket, err := h.ticketSvc.Create(context.Background(), owner, TicketCreateInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = h.commentSvc.Add(context.Background(), other, ticket.ID, "let me in")
	requireDomainStatus(t, err, 403)

	_, err = h.commentSvc.List(context.Background(), other, ticket.ID)
	requireDomainStatus(t, err, 403)

	_, err = h.commentSvc.Add(context.Background(), agent, ticket.ID, "looking into it")
	require.NoError(t, err)
}

func TestCommentThreadOrderedAscending(t *testing.T) {
	h := newHarness(t)
	client := h.client("Ana", "ana@example.com")
	agent := h.agent("Bo", "bo@example.com")

	ticket, err := h.ticketSvc.Create(context.Background(), client, TicketCreateInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	for _, msg := range []string{"first", "second", "third"} {
		actor := client
		if msg == "second" {
			actor = agent
		}
		_, err = h.commentSvc.Add(context.Background(), actor, ticket.ID, msg)
		require.NoError(t, err)
	}

	comments, err := h.commentSvc.List(context.Background(), client, ticket.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	require.Equal(t, "first", comments[0].Message)
	require.Equal(t, "second", comments[1].Message)
	require.Equal(t, "third", comments[2].Message)
	require.Equal(t, agent.ID, comments[1].Author.ID())
}

func TestAgentCommentNotifiesCreator(t *testing.T) {
	h := newHarness(t)
	client := h.client("Ana", "ana@example.com")
	agent := h.agent("Bo", "bo@example.com")

	ticket, err := h.ticketSvc.Create(context.Background(), client, TicketCreateInput{Title: "VPN down", Description: "d"})
	require.NoError(t, err)
	baseline := h.mailer.count()

	_, err = h.commentSvc.Add(context.Background(), agent, ticket.ID, "restart the router")
	require.NoError(t, err)

	sent := h.mailer.sentTo("ana@example.com")
	require.Len(t, sent, 2)
	last := sent[len(sent)-1]
	require.Contains(t, last.Subject, "New response on your ticket")
	require.Contains(t, last.Body, "restart the router")
	require.Equal(t, baseline+1, h.mailer.count())
}

func TestClientCommentDoesNotNotify(t *testing.T) {
	h := newHarness(t)
	client := h.client("Ana", "ana@example.com")

	ticket, err := h.ticketSvc.Create(context.Background(), client, TicketCreateInput{Title: "t", Description: "d"})
	require.NoError(t, err)
	baseline := h.mailer.count()

	_, err = h.commentSvc.Add(context.Background(), client, ticket.ID, "still broken")
	require.NoError(t, err)
	require.Equal(t, baseline, h.mailer.count())
}

func TestAddCommentTouchesTicket(t *testing.T) {
	h := newHarness(t)
	client := h.client("Ana", "ana@example.com")
	agent := h.agent("Bo", "bo@example.com")

	stale := h.staleTicket(client, domain.TicketStatusOpen, 48*time.Hour)

	_, err := h.commentSvc.Add(context.Background(), agent, stale.ID, "on it")
	require.NoError(t, err)

	refreshed, err := h.tickets.GetByID(context.Background(), stale.ID)
	require.NoError(t, err)
	require.True(t, refreshed.UpdatedAt.After(time.Now().Add(-time.Minute)))
}
