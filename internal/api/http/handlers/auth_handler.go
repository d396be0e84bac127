package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/repair-service/internal/api/dto"
	"github.com/spec-kit/repair-service/internal/auth"
	"github.com/spec-kit/repair-service/internal/config"
	"github.com/spec-kit/repair-service/internal/ratelimit"
	"github.com/spec-kit/repair-service/internal/service"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

// AuthHandler exposes login and caller-identity endpoints.
type AuthHandler struct {
	authService      *service.AuthService
	workspaceService *service.WorkspaceService
	limiter          *ratelimit.Limiter
	rateCfg          config.RateLimitConfig
	logger           *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, workspaceService *service.WorkspaceService, limiter *ratelimit.Limiter, rateCfg config.RateLimitConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		workspaceService: workspaceService,
		limiter:          limiter,
		rateCfg:          rateCfg,
		logger:           logger,
	}
}

// Login POST /v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "body_is_invalid"})
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	identifier := strings.ToLower(strings.TrimSpace(req.ID))
	key := fmt.Sprintf("login:%s", identifier)
	allowed, err := h.limiter.Allow(c.UserContext(), key, h.rateCfg.LoginAttempts, h.rateCfg.LoginWindow())
	if err != nil {
		// Redis being down must not lock everyone out.
		h.logger.Warn("login rate limit check failed", zap.Error(err))
	} else if !allowed {
		return apperrors.NewDomainError("RATE_LIMITED", "too_many_login_attempts", fiber.StatusTooManyRequests)
	}

	user, token, expiresAt, err := h.authService.Login(c.UserContext(), req.ID, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	})
}

// Me GET /v1/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user_required")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(principal.User)})
}

// ListWorkspaces GET /v1/workspaces.
func (h *AuthHandler) ListWorkspaces(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user_required")
	}
	workspaces, err := h.workspaceService.ListWorkspacesForUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.UserWorkspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		items = append(items, dto.UserWorkspaceResponse{
			ID:   ws.Workspace.ID,
			Name: ws.Workspace.Name,
			Role: ws.Role,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
