package dto

import (
	"time"

	"github.com/spec-kit/repair-service/internal/domain"
)

// PersonRequest describes an identity to resolve or create.
type PersonRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	TelephoneNumber *string `json:"telephone_number"`
}

// CreateWorkspaceRequest provisions a tenant with its owner.
type CreateWorkspaceRequest struct {
	Name  string       `json:"name" validate:"required"`
	Owner OwnerRequest `json:"owner" validate:"required"`
}

// OwnerRequest is a PersonRequest whose password is mandatory.
type OwnerRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	TelephoneNumber *string `json:"telephone_number"`
}

// WorkspaceResponse is the provisioning result shape.
type WorkspaceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerUserID string `json:"owner_user_id"`
}

// UserWorkspaceResponse lists a workspace with the caller's role.
type UserWorkspaceResponse struct {
	ID   string               `json:"id"`
	Name string               `json:"name"`
	Role domain.WorkspaceRole `json:"role"`
}

// AddMemberRequest adds or reactivates a membership.
type AddMemberRequest struct {
	Email           string                `json:"email" validate:"required,email"`
	Password        string                `json:"password"`
	FirstName       *string               `json:"first_name"`
	LastName        *string               `json:"last_name"`
	TelephoneNumber *string               `json:"telephone_number"`
	Role            *domain.WorkspaceRole `json:"role" validate:"omitempty,oneof=owner admin member"`
}

// MemberResponse is the membership listing shape.
type MemberResponse struct {
	ID        string               `json:"id"`
	Role      domain.WorkspaceRole `json:"role"`
	Status    domain.MemberStatus  `json:"status"`
	JoinedAt  *time.Time           `json:"joined_at"`
	User      *UserResponse        `json:"user"`
	CreatedAt time.Time            `json:"created_at"`
}
