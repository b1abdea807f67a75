package mail

import "fmt"

// TemplateKind selects the lifecycle email to render.
type TemplateKind string

const (
	TemplateCreated  TemplateKind = "created"
	TemplateResponse TemplateKind = "response"
	TemplateClosed   TemplateKind = "closed"
)

// Email is a rendered subject/body pair.
type Email struct {
	Subject string
	Body    string
}

const fallbackResponseText = "No message provided"

// Render produces the lifecycle email for a ticket. Rendering is pure; no
// transport involved. The response template substitutes fallback text when
// the message is empty.
func Render(kind TemplateKind, ticketTitle, ticketID, message, baseURL string) Email {
	link := fmt.Sprintf("%s/tickets/%s", baseURL, ticketID)

	switch kind {
	case TemplateCreated:
		return Email{
			Subject: fmt.Sprintf("Ticket created: %s", ticketTitle),
			Body: fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Ticket Created Successfully</h2>
  <p>Your ticket has been created and is being processed.</p>
  <div style="background-color: #f3f4f6; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Title:</strong> %s</p>
    <p><strong>Ticket ID:</strong> %s</p>
  </div>
  <p>You can check the status of your ticket at: <a href="%s">View Ticket</a></p>
</div>`, ticketTitle, ticketID, link),
		}
	case TemplateResponse:
		if message == "" {
			message = fallbackResponseText
		}
		return Email{
			Subject: fmt.Sprintf("New response on your ticket: %s", ticketTitle),
			Body: fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">New Response on Your Ticket</h2>
  <p>An agent has responded to your ticket.</p>
  <div style="background-color: #f3f4f6; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Title:</strong> %s</p>
    <p><strong>Response:</strong></p>
    <p style="background-color: white; padding: 10px; border-left: 3px solid #2563eb;">%s</p>
  </div>
  <p>You can read the full response at: <a href="%s">View Ticket</a></p>
</div>`, ticketTitle, message, link),
		}
	case TemplateClosed:
		return Email{
			Subject: fmt.Sprintf("Ticket closed: %s", ticketTitle),
			Body: fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #16a34a;">Ticket Closed</h2>
  <p>Your ticket has been closed.</p>
  <div style="background-color: #f3f4f6; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Title:</strong> %s</p>
    <p><strong>Ticket ID:</strong> %s</p>
  </div>
  <p>Thank you for using HelpDeskPro.</p>
</div>`, ticketTitle, ticketID),
		}
	}
	return Email{}
}

// RenderReminder produces the stale-ticket reminder email sent to agents.
// The assigned variant addresses the assignee directly.
func RenderReminder(ticketTitle, ticketID, priority, clientName string, assigned bool) Email {
	intro := "The following ticket has gone more than 24 hours without a response:"
	if assigned {
		intro = "The following ticket assigned to you has gone more than 24 hours without a response:"
	}
	return Email{
		Subject: fmt.Sprintf("Reminder: Ticket awaiting response - %s", ticketTitle),
		Body: fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f59e0b;">Ticket Reminder</h2>
  <p>%s</p>
  <div style="background-color: #f3f4f6; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Title:</strong> %s</p>
    <p><strong>ID:</strong> %s</p>
    <p><strong>Priority:</strong> %s</p>
    <p><strong>Client:</strong> %s</p>
  </div>
  <p>Please review and respond to the ticket as soon as possible.</p>
</div>`, intro, ticketTitle, ticketID, priority, clientName),
	}
}
