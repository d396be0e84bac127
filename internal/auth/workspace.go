package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/repair-service/internal/domain"
	"github.com/spec-kit/repair-service/internal/repository"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

const (
	workspaceKey = "auth_workspace"
	memberKey    = "auth_workspace_member"
)

// WorkspaceMiddleware resolves the workspace and the caller's membership for
// routes scoped under /workspaces/:workspace_id.
type WorkspaceMiddleware struct {
	workspaces repository.WorkspaceRepository
	members    repository.WorkspaceMemberRepository
	logger     *zap.Logger
}

// NewWorkspaceMiddleware constructs middleware.
func NewWorkspaceMiddleware(workspaces repository.WorkspaceRepository, members repository.WorkspaceMemberRepository, logger *zap.Logger) *WorkspaceMiddleware {
	return &WorkspaceMiddleware{workspaces: workspaces, members: members, logger: logger}
}

// RequireMember attaches the active workspace and the caller's active
// membership to the request. Workspace-missing, workspace-archived and
// not-a-member are distinct internal reasons but indistinguishable from the
// outside, so that non-members cannot probe workspace existence.
func (m *WorkspaceMiddleware) RequireMember(c *fiber.Ctx) error {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing_authorization")
	}
	workspaceID := c.Params("workspace_id")
	if workspaceID == "" {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "workspace_id", Message: "workspace_id_is_required"})
	}

	workspace, err := m.workspaces.GetByID(c.Context(), workspaceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return m.deny(c, workspaceID, "workspace_missing")
		}
		return apperrors.MapError(err)
	}
	if workspace.Status != domain.WorkspaceStatusActive {
		return m.deny(c, workspaceID, "workspace_archived")
	}

	member, err := m.members.GetByWorkspaceAndUser(c.Context(), workspaceID, principal.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return m.deny(c, workspaceID, "not_a_member")
		}
		return apperrors.MapError(err)
	}
	if member.Status != domain.MemberStatusActive {
		return m.deny(c, workspaceID, "membership_not_active")
	}

	c.Locals(workspaceKey, workspace)
	c.Locals(memberKey, member)
	return c.Next()
}

func (m *WorkspaceMiddleware) deny(c *fiber.Ctx, workspaceID, reason string) error {
	m.logger.Debug("workspace access denied",
		zap.String("workspace_id", workspaceID),
		zap.String("reason", reason),
	)
	return apperrors.NewNotFound("workspace_not_found")
}

// RequireAdmin passes only owner/admin memberships. It must run after
// RequireMember; absent membership context fails closed.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		member, ok := MemberFromContext(c)
		if !ok {
			return apperrors.NewForbidden("forbidden")
		}
		if !Can(member.Role, ActionManageMembers) {
			return apperrors.NewForbidden("forbidden")
		}
		return c.Next()
	}
}

// WorkspaceFromContext retrieves the resolved workspace.
func WorkspaceFromContext(c *fiber.Ctx) (*domain.Workspace, bool) {
	val := c.Locals(workspaceKey)
	if val == nil {
		return nil, false
	}
	workspace, ok := val.(*domain.Workspace)
	return workspace, ok
}

// MemberFromContext retrieves the caller's membership.
func MemberFromContext(c *fiber.Ctx) (*domain.WorkspaceMember, bool) {
	val := c.Locals(memberKey)
	if val == nil {
		return nil, false
	}
	member, ok := val.(*domain.WorkspaceMember)
	return member, ok
}
