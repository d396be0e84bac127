package domain

import "time"

// WorkspaceRole enumerates workspace-scoped roles.
type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "owner"
	WorkspaceRoleAdmin  WorkspaceRole = "admin"
	WorkspaceRoleMember WorkspaceRole = "member"
)

// MemberStatus enumerates membership lifecycle states.
type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "active"
	MemberStatusInvited MemberStatus = "invited"
	MemberStatusRemoved MemberStatus = "removed"
)

// WorkspaceMember binds one user to one workspace. At most one row exists per
// (workspace, user) pair; re-adding a removed member reactivates the same row.
type WorkspaceMember struct {
	ID              string
	WorkspaceID     string
	UserID          string
	InvitedByUserID *string
	Role            WorkspaceRole
	Status          MemberStatus
	JoinedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MemberDetail pairs a membership with its user for listings.
type MemberDetail struct {
	Member WorkspaceMember
	User   User
}

// UserWorkspace pairs a workspace with the caller's role in it.
type UserWorkspace struct {
	Workspace Workspace
	Role      WorkspaceRole
}
