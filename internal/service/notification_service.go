package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	"github.com/helpdeskpro/helpdesk-service/internal/events"
	"github.com/helpdeskpro/helpdesk-service/internal/mail"
)

// NotificationService turns domain events into transactional emails. It is
// a pure side channel: every handler swallows its own failures.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
	baseURL    string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger, baseURL string) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		baseURL:    baseURL,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventCommentAdded, n.handleCommentAdded)
	n.dispatcher.Subscribe(events.EventTicketReminderDue, n.handleReminderDue)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok || payload.CreatorEmail == "" {
		n.logger.Warn("ticket created event missing creator email", zap.String("ticket_id", event.TicketID))
		return nil
	}
	email := mail.Render(mail.TemplateCreated, payload.Title, event.TicketID, "", n.baseURL)
	n.send(ctx, payload.CreatorEmail, email)
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	// Only a fresh transition into closed is mailed to the creator.
	if payload.NewStatus != domain.TicketStatusClosed || payload.OldStatus == domain.TicketStatusClosed {
		return nil
	}
	if payload.CreatorEmail == "" {
		n.logger.Warn("status change event missing creator email", zap.String("ticket_id", event.TicketID))
		return nil
	}
	email := mail.Render(mail.TemplateClosed, payload.Title, event.TicketID, "", n.baseURL)
	n.send(ctx, payload.CreatorEmail, email)
	return nil
}

func (n *NotificationService) handleCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CommentAddedPayload)
	if !ok {
		return nil
	}
	// Client comments don't notify anyone; agent replies go to the creator.
	if payload.AuthorRole != domain.RoleAgent || payload.CreatorEmail == "" {
		return nil
	}
	email := mail.Render(mail.TemplateResponse, payload.Title, event.TicketID, payload.Message, n.baseURL)
	n.send(ctx, payload.CreatorEmail, email)
	return nil
}

func (n *NotificationService) handleReminderDue(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketReminderDuePayload)
	if !ok {
		return nil
	}
	email := mail.RenderReminder(payload.Title, event.TicketID, string(payload.Priority), payload.ClientName, payload.Assigned)
	for _, recipient := range payload.Recipients {
		n.send(ctx, recipient, email)
	}
	return nil
}

func (n *NotificationService) send(ctx context.Context, to string, email mail.Email) {
	result := n.mailer.Send(ctx, to, email.Subject, email.Body)
	if !result.Sent {
		n.logger.Warn("notification email not delivered",
			zap.String("to", to),
			zap.String("subject", email.Subject),
			zap.String("reason", result.Reason))
	}
}
