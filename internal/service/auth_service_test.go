package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpdeskpro/helpdesk-service/internal/config"
	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

func newAuthService(users *fakeUserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}, users)
}

func TestRegisterCreatesClientWithToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	user, token, exp, err := svc.Register(context.Background(), "Ana", "Ana@Example.COM", "secret1", domain.RoleClient)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "ana@example.com", user.Email)
	require.Equal(t, domain.RoleClient, user.Role)
	require.NotEmpty(t, token)
	require.False(t, exp.IsZero())

	// Plaintext must never be persisted.
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret1", domain.RoleClient)
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "Ana Clone", "ANA@example.com", "secret2", domain.RoleClient)
	requireDomainCode(t, err, "DUPLICATE_EMAIL")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "five5", domain.RoleClient)
	requireDomainCode(t, err, "WEAK_PASSWORD")
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret1", domain.Role("manager"))
	requireDomainCode(t, err, "INVALID_ROLE")
}

func TestRegisterDefaultsRoleToClient(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	user, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret1", "")
	require.NoError(t, err)
	require.Equal(t, domain.RoleClient, user.Role)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, _, err := svc.Register(context.Background(), "", "ana@example.com", "secret1", domain.RoleClient)
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret1", domain.RoleAgent)
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "ANA@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAgent, user.Role)
	require.NotEmpty(t, token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret1", domain.RoleClient)
	require.NoError(t, err)

	_, _, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "secret1")
	_, _, _, wrongErr := svc.Login(context.Background(), "ana@example.com", "wrong-password")

	requireDomainStatus(t, unknownErr, 401)
	requireDomainStatus(t, wrongErr, 401)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}
