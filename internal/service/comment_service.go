package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	"github.com/helpdeskpro/helpdesk-service/internal/events"
	"github.com/helpdeskpro/helpdesk-service/internal/policy"
	"github.com/helpdeskpro/helpdesk-service/internal/repository"
	apperrors "github.com/helpdeskpro/helpdesk-service/pkg/util"
)

// CommentService manages per-ticket comment threads.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles repositories for comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	TicketRepo  repository.TicketRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// List returns a ticket's thread in ascending creation order. Read
// authorization mirrors the ticket read check.
func (s *CommentService) List(ctx context.Context, actor *domain.User, ticketID string) ([]domain.Comment, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("not allowed to view this ticket")
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// Add appends a comment to a ticket thread and touches the ticket's
// last-modified timestamp. An agent comment fires a "response"
// notification to the ticket's creator.
func (s *CommentService) Add(ctx context.Context, actor *domain.User, ticketID, message string) (*domain.Comment, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message is required", nil)
	}

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanCommentOn(actor, ticket) {
		return nil, apperrors.NewForbidden("not allowed to comment on this ticket")
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		Author:   domain.ResolvedRef(actor),
		Message:  message,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.tickets.TouchUpdatedAt(ctx, ticket.ID); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.CommentAddedPayload{
			CommentID:    comment.ID,
			Title:        ticket.Title,
			Message:      comment.Message,
			AuthorRole:   actor.Role,
			CreatorEmail: creatorEmail(ticket),
		},
	})
	return comment, nil
}

func (s *CommentService) getTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
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
