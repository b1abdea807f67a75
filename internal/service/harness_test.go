package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	"github.com/helpdeskpro/helpdesk-service/internal/events"
	apperrors "github.com/helpdeskpro/helpdesk-service/pkg/util"
)

const testBaseURL = "http://localhost:8080"

// harness wires the services against in-memory fakes with the real event
// dispatcher and notification pipeline, so tests observe the emails a
// mutation actually produces.
type harness struct {
	users    *fakeUserRepo
	tickets  *fakeTicketRepo
	comments *fakeCommentRepo
	mailer   *fakeMailer

	ticketSvc   *TicketService
	commentSvc  *CommentService
	reminderSvc *ReminderService
	stamper     *fakeStamper
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		users:    newFakeUserRepo(),
		tickets:  newFakeTicketRepo(),
		comments: newFakeCommentRepo(),
		mailer:   &fakeMailer{},
		stamper:  newFakeStamper(),
	}

	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	notifications := NewNotificationService(dispatcher, h.mailer, logger, testBaseURL)
	notifications.RegisterHandlers()

	h.ticketSvc = NewTicketService(TicketDependencies{
		TicketRepo: h.tickets,
		UserRepo:   h.users,
		Dispatcher: dispatcher,
	})
	h.commentSvc = NewCommentService(CommentDependencies{
		CommentRepo: h.comments,
		TicketRepo:  h.tickets,
		Dispatcher:  dispatcher,
	})
	h.reminderSvc = NewReminderService(ReminderDependencies{
		TicketRepo:  h.tickets,
		CommentRepo: h.comments,
		UserRepo:    h.users,
		Dispatcher:  dispatcher,
		Stamper:     h.stamper,
		StaleAfter:  24 * time.Hour,
		Logger:      logger,
	})
	return h
}

func (h *harness) client(name, email string) *domain.User {
	return h.users.seed(&domain.User{Name: name, Email: email, Role: domain.RoleClient, PasswordHash: "x"})
}

func (h *harness) agent(name, email string) *domain.User {
	return h.users.seed(&domain.User{Name: name, Email: email, Role: domain.RoleAgent, PasswordHash: "x"})
}

// staleTicket seeds a ticket whose updatedAt is the given age in the past.
func (h *harness) staleTicket(creator *domain.User, status domain.TicketStatus, age time.Duration) *domain.Ticket {
	now := time.Now()
	return h.tickets.seed(&domain.Ticket{
		Title:       "Printer on fire",
		Description: "It is printing and also on fire",
		CreatedBy:   domain.ResolvedRef(creator),
		Status:      status,
		Priority:    domain.TicketPriorityHigh,
		CreatedAt:   now.Add(-age),
		UpdatedAt:   now.Add(-age),
	})
}

func requireDomainStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T: %v", err, err)
	require.Equal(t, status, domainErr.HTTPStatus)
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T: %v", err, err)
	require.Equal(t, code, domainErr.Code)
}
