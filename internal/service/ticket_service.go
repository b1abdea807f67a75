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

// TicketService coordinates the ticket lifecycle.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketUpdateInput describes a partial agent update. Nil fields are left
// unchanged.
type TicketUpdateInput struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	AssignedTo *string
}

// TicketListFilter describes optional listing filters.
type TicketListFilter struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create files a new ticket for a client. Status starts open; priority
// defaults to medium. Fires a "created" notification to the creator.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if actor.Role != domain.RoleClient {
		return nil, apperrors.NewForbidden("only clients can create tickets")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": string(priority)})
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		CreatedBy:   domain.ResolvedRef(actor),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.TicketCreatedPayload{
			Title:        ticket.Title,
			Priority:     ticket.Priority,
			CreatorEmail: actor.Email,
		},
	})
	return ticket, nil
}

// Get fetches a ticket, enforcing the read policy.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("not allowed to view this ticket")
	}
	return ticket, nil
}

// List returns tickets visible to the actor, newest first. Clients are
// implicitly scoped to their own tickets.
func (s *TicketService) List(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status filter", nil)
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority filter", nil)
	}

	repoFilter := repository.TicketFilter{
		Status:   filter.Status,
		Priority: filter.Priority,
	}
	if actor.Role == domain.RoleClient {
		repoFilter.CreatedBy = &actor.ID
	}
	tickets, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Update applies a partial status/priority/assignment change by an agent.
// Closed is terminal: status changes on a closed ticket are rejected. A
// fresh transition to closed fires exactly one "closed" notification to the
// creator.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	if !policy.CanUpdateTicket(actor) {
		return nil, apperrors.NewForbidden("only agents can update tickets")
	}

	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(*input.Status)})
		}
		if !domain.CanTransition(ticket.Status, *input.Status) {
			return nil, apperrors.NewValidationError("ticket is closed", map[string]any{"status": string(ticket.Status)})
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": string(*input.Priority)})
		}
		ticket.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		assignee, err := s.users.GetByID(ctx, *input.AssignedTo)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("assignee not found", nil)
			}
			return nil, apperrors.MapError(err)
		}
		if assignee.Role != domain.RoleAgent {
			return nil, apperrors.NewValidationError("assignee must be an agent", nil)
		}
		ref := domain.ResolvedRef(assignee)
		ticket.AssignedTo = &ref
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if ticket.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Actor:    actorOf(actor),
			Payload: events.TicketStatusChangedPayload{
				Title:        ticket.Title,
				OldStatus:    oldStatus,
				NewStatus:    ticket.Status,
				CreatorEmail: creatorEmail(ticket),
			},
		})
	}
	return ticket, nil
}

// Delete removes a ticket; permitted for agents and the creating client.
// Comments cascade with the ticket.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, id string) error {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteTicket(actor, ticket) {
		return apperrors.NewForbidden("not allowed to delete this ticket")
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) getTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
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

func actorOf(user *domain.User) events.Actor {
	return events.Actor{UserID: user.ID, Role: user.Role}
}

func creatorEmail(ticket *domain.Ticket) string {
	if creator, ok := ticket.CreatedBy.User(); ok {
		return creator.Email
	}
	return ""
}
