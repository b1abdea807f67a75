package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	"github.com/helpdeskpro/helpdesk-service/internal/events"
	"github.com/helpdeskpro/helpdesk-service/internal/repository"
	apperrors "github.com/helpdeskpro/helpdesk-service/pkg/util"
)

// ReminderStamper records that a ticket was reminded within the current
// window, so sweeps that fire more than once per window stay quiet. The
// Redis client implements it.
type ReminderStamper interface {
	MarkReminded(ctx context.Context, ticketID string, window time.Duration) (bool, error)
}

// ReminderService runs the stale-ticket sweep: non-closed tickets untouched
// for longer than the stale window, with no comment inside the window, get
// a reminder email to the assignee (or all agents when unassigned).
type ReminderService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	stamper    ReminderStamper
	staleAfter time.Duration
	logger     *zap.Logger
}

// ReminderDependencies bundles collaborators for the sweep.
type ReminderDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Stamper     ReminderStamper
	StaleAfter  time.Duration
	Logger      *zap.Logger
}

// SweepResult reports one sweep invocation. RemindersSent counts stale
// tickets that triggered a notification batch, not individual emails.
type SweepResult struct {
	TicketsChecked int `json:"ticketsChecked"`
	RemindersSent  int `json:"remindersSent"`
}

// NewReminderService constructs the service.
func NewReminderService(deps ReminderDependencies) *ReminderService {
	staleAfter := deps.StaleAfter
	if staleAfter <= 0 {
		staleAfter = 24 * time.Hour
	}
	return &ReminderService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		stamper:    deps.Stamper,
		staleAfter: staleAfter,
		logger:     deps.Logger,
	}
}

// Sweep processes stale tickets sequentially in a single pass.
func (s *ReminderService) Sweep(ctx context.Context) (SweepResult, error) {
	cutoff := time.Now().Add(-s.staleAfter)

	tickets, err := s.tickets.ListStale(ctx, cutoff)
	if err != nil {
		return SweepResult{}, apperrors.MapError(err)
	}

	result := SweepResult{TicketsChecked: len(tickets)}
	for i := range tickets {
		ticket := &tickets[i]

		recent, err := s.comments.CountSince(ctx, ticket.ID, cutoff)
		if err != nil {
			return result, apperrors.MapError(err)
		}
		if recent > 0 {
			continue
		}

		if !s.firstReminderInWindow(ctx, ticket.ID) {
			continue
		}

		s.notify(ctx, ticket)
		result.RemindersSent++
	}

	if s.logger != nil {
		s.logger.Info("reminder sweep finished",
			zap.Int("tickets_checked", result.TicketsChecked),
			zap.Int("reminders_sent", result.RemindersSent))
	}
	return result, nil
}

// firstReminderInWindow consults the dedup stamp. A stamp failure degrades
// to sending: duplicate reminders beat silently dropped ones.
func (s *ReminderService) firstReminderInWindow(ctx context.Context, ticketID string) bool {
	if s.stamper == nil {
		return true
	}
	first, err := s.stamper.MarkReminded(ctx, ticketID, s.staleAfter)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("reminder stamp unavailable; sending anyway",
				zap.String("ticket_id", ticketID), zap.Error(err))
		}
		return true
	}
	return first
}

func (s *ReminderService) notify(ctx context.Context, ticket *domain.Ticket) {
	clientName := ""
	if creator, ok := ticket.CreatedBy.User(); ok {
		clientName = creator.Name
	}

	payload := events.TicketReminderDuePayload{
		Title:      ticket.Title,
		Priority:   ticket.Priority,
		ClientName: clientName,
		Assigned:   ticket.AssignedTo != nil,
	}

	if ticket.AssignedTo != nil {
		payload.Recipients = s.assigneeRecipients(ctx, ticket)
	} else {
		payload.Recipients = s.agentRecipients(ctx)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReminderDue,
		TicketID: ticket.ID,
		Payload:  payload,
	})
}

func (s *ReminderService) assigneeRecipients(ctx context.Context, ticket *domain.Ticket) []string {
	if assignee, ok := ticket.AssignedTo.User(); ok && assignee.Email != "" {
		return []string{assignee.Email}
	}
	assignee, err := s.users.GetByID(ctx, ticket.AssignedTo.ID())
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("could not resolve assignee for reminder",
				zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
		return nil
	}
	return []string{assignee.Email}
}

func (s *ReminderService) agentRecipients(ctx context.Context) []string {
	agents, err := s.users.ListByRole(ctx, domain.RoleAgent)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("could not list agents for reminder", zap.Error(err))
		}
		return nil
	}
	recipients := make([]string, 0, len(agents))
	for _, agent := range agents {
		recipients = append(recipients, agent.Email)
	}
	return recipients
}

func (s *ReminderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
