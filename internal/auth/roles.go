package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	apperrors "github.com/helpdeskpro/helpdesk-service/pkg/util"
)

// RequireRole ensures the authenticated actor has the given role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if actor.Role != role {
			return apperrors.NewForbidden(string(role) + " role required")
		}
		return c.Next()
	}
}

// RequireSharedSecret guards trusted endpoints (the reminder sweep) with a
// pre-shared bearer secret instead of a user token.
func RequireSharedSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get("Authorization"))
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return c.Next()
	}
}
