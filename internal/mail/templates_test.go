package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080"

func TestRenderCreated(t *testing.T) {
	email := Render(TemplateCreated, "VPN down", "ticket-1", "", baseURL)
	require.Equal(t, "Ticket created: VPN down", email.Subject)
	require.Contains(t, email.Body, "VPN down")
	require.Contains(t, email.Body, "ticket-1")
	require.Contains(t, email.Body, baseURL+"/tickets/ticket-1")
}

func TestRenderResponseFallsBackWhenMessageEmpty(t *testing.T) {
	email := Render(TemplateResponse, "VPN down", "ticket-1", "", baseURL)
	require.Contains(t, email.Body, "No message provided")

	email = Render(TemplateResponse, "VPN down", "ticket-1", "restart the router", baseURL)
	require.Contains(t, email.Body, "restart the router")
	require.NotContains(t, email.Body, "No message provided")
}

func TestRenderClosed(t *testing.T) {
	email := Render(TemplateClosed, "VPN down", "ticket-1", "", baseURL)
	require.Equal(t, "Ticket closed: VPN down", email.Subject)
	require.Contains(t, email.Body, "ticket-1")
}

func TestRenderUnknownKindIsEmpty(t *testing.T) {
	email := Render(TemplateKind("nonsense"), "t", "id", "", baseURL)
	require.Empty(t, email.Subject)
	require.Empty(t, email.Body)
}

func TestRenderReminderVariants(t *testing.T) {
	assigned := RenderReminder("VPN down", "ticket-1", "high", "Ana", true)
	require.Equal(t, "Reminder: Ticket awaiting response - VPN down", assigned.Subject)
	require.Contains(t, assigned.Body, "assigned to you")
	require.Contains(t, assigned.Body, "high")
	require.Contains(t, assigned.Body, "Ana")

	unassigned := RenderReminder("VPN down", "ticket-1", "high", "Ana", false)
	require.NotContains(t, unassigned.Body, "assigned to you")
}
