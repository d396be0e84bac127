package domain

import "time"

// WorkspaceStatus represents tenant lifecycle states.
type WorkspaceStatus string

const (
	WorkspaceStatusActive   WorkspaceStatus = "active"
	WorkspaceStatusArchived WorkspaceStatus = "archived"
)

// Workspace is the tenant boundary; every repair belongs to exactly one.
type Workspace struct {
	ID              string
	Name            string
	CreatedByUserID string
	OwnerUserID     string
	Status          WorkspaceStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
