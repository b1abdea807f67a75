package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	"github.com/helpdeskpro/helpdesk-service/internal/repository"
	apperrors "github.com/helpdeskpro/helpdesk-service/pkg/util"
)

const actorKey = "auth_actor"

// Middleware validates bearer tokens and loads the acting user.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes. Missing, malformed
// and expired tokens are indistinguishable to the caller.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get("Authorization"))
	if !ok {
		return apperrors.NewUnauthorized("missing or invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid token")
		}
		return apperrors.MapError(err)
	}

	c.Locals(actorKey, user)
	return c.Next()
}

// ActorFromContext retrieves the authenticated user.
func ActorFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(actorKey)
	if val == nil {
		return nil, false
	}
	actor, ok := val.(*domain.User)
	return actor, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
