package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/repair-service/internal/domain"
	"github.com/spec-kit/repair-service/internal/repository"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	UserID string
	Role   domain.GlobalRole
	User   *domain.User
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// Authenticate enforces authentication for protected routes. The encoded
// subject must resolve to a live, active identity; missing, invalid and
// inactive outcomes stay distinct internally but carry generic messages.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing_authorization")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid_token")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid_token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			m.logger.Debug("token subject no longer exists", zap.String("user_id", claims.UserID))
			return apperrors.NewUnauthorized("invalid_token")
		}
		return apperrors.MapError(err)
	}
	if user.Status != domain.UserStatusActive {
		return apperrors.NewForbidden("user_inactive")
	}

	c.Locals(principalKey, &Principal{UserID: user.ID, Role: user.Role, User: user})
	return c.Next()
}

// RequireSuperadmin passes only callers holding the global superadmin role.
// It does not need any workspace in context.
func RequireSuperadmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("missing_authorization")
		}
		if principal.Role != domain.RoleSuperadmin {
			return apperrors.NewForbidden("forbidden")
		}
		return c.Next()
	}
}

// RequireBootstrapToken guards the one-time superadmin bootstrap route with a
// shared header secret.
func RequireBootstrapToken(expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if expected == "" {
			return apperrors.NewInternalError(nil)
		}
		provided := c.Get("X-Bootstrap-Token")
		if provided == "" {
			return apperrors.NewUnauthorized("missing_bootstrap_token")
		}
		if provided != expected {
			return apperrors.NewUnauthorized("invalid_bootstrap_token")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
