package events

import "github.com/spec-kit/repair-service/internal/domain"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRepairCreated   EventType = "repair_created"
	EventRepairCompleted EventType = "repair_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type        EventType       `json:"type"`
	WorkspaceID string          `json:"workspace_id"`
	RepairID    string          `json:"repair_id"`
	ActorUserID *string         `json:"actor_user_id,omitempty"`
	Customer    domain.Customer `json:"customer"`
	// Message is the optional human-authored SMS text attached to the
	// triggering request. Empty means nothing should be sent.
	Message string `json:"message,omitempty"`
}
