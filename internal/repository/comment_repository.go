package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

// CommentRepository encapsulates comment persistence. Comments are
// append-only; there is no update or single delete.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error)
	CountSince(ctx context.Context, ticketID string, since time.Time) (int, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository instantiates repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, author, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.Author.ID(),
		comment.Message,
	).Scan(&comment.ID, &comment.CreatedAt)
}

// ListByTicket returns the thread in ascending creation order with each
// author resolved.
func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	const query = `
        SELECT c.id, c.ticket_id, c.message, c.created_at,
               u.id, u.name, u.email, u.role
        FROM comments c
        JOIN users u ON u.id = c.author
        WHERE c.ticket_id=$1
        ORDER BY c.created_at`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var (
			comment domain.Comment
			author  domain.User
		)
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.Message,
			&comment.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
			&author.Role,
		); err != nil {
			return nil, err
		}
		comment.Author = domain.ResolvedRef(&author)
		result = append(result, comment)
	}
	return result, rows.Err()
}

func (r *commentRepository) CountSince(ctx context.Context, ticketID string, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM comments WHERE ticket_id=$1 AND created_at >= $2`
	var count int
	if err := r.pool.QueryRow(ctx, query, ticketID, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
