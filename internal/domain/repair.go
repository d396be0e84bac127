package domain

import "time"

// RepairStatus enumerates lifecycle states for repair tickets. The only legal
// transition is in_progress -> completed.
type RepairStatus string

const (
	RepairStatusInProgress RepairStatus = "in_progress"
	RepairStatusCompleted  RepairStatus = "completed"
)

// Customer is a point-in-time snapshot captured at repair creation, not a
// reference to any identity record.
type Customer struct {
	Name            string `json:"name"`
	TelephoneNumber string `json:"telephone_number"`
}

// Item describes the device handed in for repair. All fields are optional.
type Item struct {
	Type         *string `json:"type"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
}

// Repair is the aggregate for repair tickets, scoped to one workspace.
type Repair struct {
	ID               string
	WorkspaceID      string
	CreatedByUserID  string
	AssignedToUserID *string
	Status           RepairStatus
	Customer         Customer
	Item             Item
	IssueDescription string
	ReceivedAt       time.Time
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
