package domain

import "time"

// ActivityType captures what kind of action an audit entry records.
type ActivityType string

const (
	ActivityCreated       ActivityType = "created"
	ActivityStatusChanged ActivityType = "status_changed"
	ActivityNoteAdded     ActivityType = "note_added"
	ActivityUpdated       ActivityType = "updated"
)

// RepairActivity is an immutable audit entry for a repair. Entries are never
// updated or deleted after creation.
type RepairActivity struct {
	ID          string
	RepairID    string
	WorkspaceID string
	ActorUserID *string
	Type        ActivityType
	FromStatus  *RepairStatus
	ToStatus    *RepairStatus
	Note        *string
	Metadata    map[string]any
	CreatedAt   time.Time
}
