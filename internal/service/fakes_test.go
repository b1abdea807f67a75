package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	"github.com/helpdeskpro/helpdesk-service/internal/mail"
	"github.com/helpdeskpro/helpdesk-service/internal/repository"
)

// In-memory fakes implementing the repository interfaces, used across the
// service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		if user.Role == role {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeUserRepo) seed(user *domain.User) *domain.User {
	_ = r.Create(context.Background(), user)
	return user
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	seq     int
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.CreatedBy != nil && ticket.CreatedBy.ID() != *filter.CreatedBy {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		result = append(result, *ticket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeTicketRepo) ListStale(_ context.Context, olderThan time.Time) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.Status != domain.TicketStatusOpen && ticket.Status != domain.TicketStatusInProgress {
			continue
		}
		if !ticket.UpdatedAt.Before(olderThan) {
			continue
		}
		result = append(result, *ticket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.Before(result[j].UpdatedAt) })
	return result, nil
}

func (r *fakeTicketRepo) TouchUpdatedAt(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) seed(ticket *domain.Ticket) *domain.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if ticket.ID == "" {
		ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	}
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return ticket
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments []domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	if comment.CreatedAt.IsZero() {
		// Spread timestamps so ordering is deterministic.
		comment.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	}
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeCommentRepo) CountSince(_ context.Context, ticketID string, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, comment := range r.comments {
		if comment.TicketID == ticketID && !comment.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeCommentRepo) seed(comment domain.Comment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if comment.ID == "" {
		comment.ID = fmt.Sprintf("comment-%d", r.seq)
	}
	r.comments = append(r.comments, comment)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) mail.SendResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: html})
	return mail.SendResult{Sent: true, MessageID: fmt.Sprintf("msg-%d", len(m.sent))}
}

func (m *fakeMailer) sentTo(addr string) []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []sentMail
	for _, s := range m.sent {
		if s.To == addr {
			result = append(result, s)
		}
	}
	return result
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeStamper struct {
	mu      sync.Mutex
	stamped map[string]bool
	err     error
}

func newFakeStamper() *fakeStamper {
	return &fakeStamper{stamped: make(map[string]bool)}
}

func (s *fakeStamper) MarkReminded(_ context.Context, ticketID string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if s.stamped[ticketID] {
		return false, nil
	}
	s.stamped[ticketID] = true
	return true, nil
}

var errStamperDown = errors.New("redis unavailable")
