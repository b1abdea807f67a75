package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

// TicketFilter captures listing parameters. CreatedBy scopes the result set
// to a single requester; Status and Priority are optional field filters.
type TicketFilter struct {
	CreatedBy *string
	Status    *domain.TicketStatus
	Priority  *domain.TicketPriority
}

// TicketRepository encapsulates ticket persistence. Reads resolve the
// creator and assignee references with name and email.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ListStale(ctx context.Context, olderThan time.Time) ([]domain.Ticket, error)
	TouchUpdatedAt(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketSelect = `
        SELECT t.id, t.title, t.description, t.status, t.priority, t.created_at, t.updated_at,
               c.id, c.name, c.email,
               a.id, a.name, a.email
        FROM tickets t
        JOIN users c ON c.id = t.created_by
        LEFT JOIN users a ON a.id = t.assigned_to`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, created_by, status, priority)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.CreatedBy.ID(),
		ticket.Status,
		ticket.Priority,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, priority=$2, assigned_to=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	var assignedTo *string
	if ticket.AssignedTo != nil {
		id := ticket.AssignedTo.ID()
		assignedTo = &id
	}
	return r.pool.QueryRow(ctx, query,
		ticket.Status,
		ticket.Priority,
		assignedTo,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, ticketSelect+` WHERE t.id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets, err := scanTickets(rows)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &tickets[0], nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("t.created_by=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("t.status=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("t.priority=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.created_at DESC",
		ticketSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListStale(ctx context.Context, olderThan time.Time) ([]domain.Ticket, error) {
	query := ticketSelect + `
        WHERE t.status IN ($1, $2) AND t.updated_at < $3
        ORDER BY t.updated_at`

	rows, err := r.pool.Query(ctx, query,
		domain.TicketStatusOpen, domain.TicketStatusInProgress, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// TouchUpdatedAt bumps the last-modified timestamp, used when a new comment
// lands on the ticket.
func (r *ticketRepository) TouchUpdatedAt(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE tickets SET updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var (
			ticket        domain.Ticket
			creator       domain.User
			assigneeID    *string
			assigneeName  *string
			assigneeEmail *string
		)
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&creator.ID,
			&creator.Name,
			&creator.Email,
			&assigneeID,
			&assigneeName,
			&assigneeEmail,
		); err != nil {
			return nil, err
		}
		ticket.CreatedBy = domain.ResolvedRef(&creator)
		if assigneeID != nil {
			assignee := domain.User{ID: *assigneeID, Role: domain.RoleAgent}
			if assigneeName != nil {
				assignee.Name = *assigneeName
			}
			if assigneeEmail != nil {
				assignee.Email = *assigneeEmail
			}
			ref := domain.ResolvedRef(&assignee)
			ticket.AssignedTo = &ref
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
