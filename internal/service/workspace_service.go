package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/repair-service/internal/auth"
	"github.com/spec-kit/repair-service/internal/config"
	"github.com/spec-kit/repair-service/internal/domain"
	"github.com/spec-kit/repair-service/internal/repository"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

// WorkspaceService coordinates tenant provisioning and membership management.
type WorkspaceService struct {
	users      repository.UserRepository
	workspaces repository.WorkspaceRepository
	members    repository.WorkspaceMemberRepository
	bcryptCost int
}

// WorkspaceDependencies bundles repositories for the workspace service.
type WorkspaceDependencies struct {
	UserRepo      repository.UserRepository
	WorkspaceRepo repository.WorkspaceRepository
	MemberRepo    repository.WorkspaceMemberRepository
}

// NewWorkspaceService constructs the service.
func NewWorkspaceService(cfg config.AuthConfig, deps WorkspaceDependencies) *WorkspaceService {
	return &WorkspaceService{
		users:      deps.UserRepo,
		workspaces: deps.WorkspaceRepo,
		members:    deps.MemberRepo,
		bcryptCost: cfg.BcryptCost,
	}
}

// PersonInput describes an identity to resolve or create.
type PersonInput struct {
	Email           string
	Password        string
	FirstName       *string
	LastName        *string
	TelephoneNumber *string
}

// CreateWorkspaceInput carries the tenant provisioning payload.
type CreateWorkspaceInput struct {
	Name  string
	Owner PersonInput
}

// CreateWorkspace provisions a tenant with its owner membership as one unit.
// The owner identity is resolved by email/phone, or created when absent.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, creatorUserID string, input CreateWorkspaceInput) (*domain.Workspace, *domain.User, error) {
	owner, err := s.resolveOrCreateUser(ctx, input.Owner)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	workspace := &domain.Workspace{
		Name:            strings.TrimSpace(input.Name),
		CreatedByUserID: creatorUserID,
		OwnerUserID:     owner.ID,
		Status:          domain.WorkspaceStatusActive,
	}
	membership := &domain.WorkspaceMember{
		UserID:          owner.ID,
		InvitedByUserID: &creatorUserID,
		Role:            domain.WorkspaceRoleOwner,
		Status:          domain.MemberStatusActive,
		JoinedAt:        &now,
	}
	if err := s.workspaces.CreateWithOwner(ctx, workspace, membership); err != nil {
		return nil, nil, err
	}
	return workspace, owner, nil
}

// AddMemberInput carries the add-member payload.
type AddMemberInput struct {
	Person PersonInput
	Role   domain.WorkspaceRole
}

// AddMember adds a user to a workspace. A brand-new user requires a password;
// an active or invited membership conflicts; a removed membership is
// reactivated in place with the requested role. The reported flag is true for
// a newly created membership and false for a reactivation.
func (s *WorkspaceService) AddMember(ctx context.Context, workspaceID, inviterUserID string, input AddMemberInput) (*domain.WorkspaceMember, bool, error) {
	role := input.Role
	if role == "" {
		role = domain.WorkspaceRoleMember
	}

	user, err := s.resolveOrCreateUser(ctx, input.Person)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.members.GetByWorkspaceAndUser(ctx, workspaceID, user.ID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, false, err
	}
	if existing != nil {
		if existing.Status != domain.MemberStatusRemoved {
			return nil, false, apperrors.NewConflict("member_already_exists")
		}
		if err := s.members.Reactivate(ctx, existing, role, time.Now()); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	now := time.Now()
	member := &domain.WorkspaceMember{
		WorkspaceID:     workspaceID,
		UserID:          user.ID,
		InvitedByUserID: &inviterUserID,
		Role:            role,
		Status:          domain.MemberStatusActive,
		JoinedAt:        &now,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, false, err
	}
	return member, true, nil
}

// RemoveMember marks a membership removed. Owner memberships are never
// removable through this path.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, memberID string) error {
	member, err := s.members.GetByID(ctx, workspaceID, memberID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("member_not_found")
		}
		return err
	}
	if member.Status == domain.MemberStatusRemoved {
		return apperrors.NewNotFound("member_not_found")
	}
	if member.Role == domain.WorkspaceRoleOwner {
		return apperrors.NewDomainRule("owner_cannot_be_removed")
	}
	return s.members.MarkRemoved(ctx, member)
}

// ListMembers returns non-removed memberships with user details.
func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID string) ([]domain.MemberDetail, error) {
	return s.members.ListByWorkspace(ctx, workspaceID)
}

// ListWorkspacesForUser returns active workspaces the user actively belongs to.
func (s *WorkspaceService) ListWorkspacesForUser(ctx context.Context, userID string) ([]domain.UserWorkspace, error) {
	return s.workspaces.ListActiveForUser(ctx, userID)
}

// resolveOrCreateUser finds an identity by email/phone or creates it.
// Creating a brand-new user without a password is a validation error naming
// the missing field, never a silent skip.
func (s *WorkspaceService) resolveOrCreateUser(ctx context.Context, person PersonInput) (*domain.User, error) {
	user, err := s.users.GetByIdentifier(ctx, person.Email)
	if err == nil {
		return user, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	if person.Password == "" {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "password",
			Message: "password_is_required_for_new_user",
		})
	}
	hash, err := auth.HashPassword(person.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user = &domain.User{
		Email:           normalizeIdentifier(person.Email),
		TelephoneNumber: normalizeOptional(person.TelephoneNumber),
		FirstName:       person.FirstName,
		LastName:        person.LastName,
		PasswordHash:    hash,
		Role:            domain.RoleUser,
		Status:          domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeIdentifier(val string) string {
	return strings.ToLower(strings.TrimSpace(val))
}

func normalizeOptional(val *string) *string {
	if val == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
