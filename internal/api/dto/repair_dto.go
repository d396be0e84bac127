package dto

import (
	"time"

	"github.com/spec-kit/repair-service/internal/domain"
)

// CustomerRequest is the customer snapshot captured at creation.
type CustomerRequest struct {
	Name            string `json:"name" validate:"required"`
	TelephoneNumber string `json:"telephone_number" validate:"required"`
}

// ItemRequest describes the device handed in. All fields optional.
type ItemRequest struct {
	Type         *string `json:"type"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
}

// CreateRepairRequest opens a ticket.
type CreateRepairRequest struct {
	Customer         CustomerRequest `json:"customer" validate:"required"`
	Item             *ItemRequest    `json:"item"`
	IssueDescription string          `json:"issue_description" validate:"required"`
	Message          *string         `json:"message"`
}

// CompleteRepairRequest optionally carries a customer SMS.
type CompleteRepairRequest struct {
	Message *string `json:"message"`
}

// SendMessageRequest is the explicit customer-SMS payload.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// AddNoteRequest appends a note to the audit trail.
type AddNoteRequest struct {
	Note string `json:"note" validate:"required"`
}

// RepairResponse is the full ticket shape.
type RepairResponse struct {
	ID               string              `json:"id"`
	Status           domain.RepairStatus `json:"status"`
	Customer         domain.Customer     `json:"customer"`
	Item             domain.Item         `json:"item"`
	IssueDescription string              `json:"issue_description"`
	ReceivedAt       time.Time           `json:"received_at"`
	CompletedAt      *time.Time          `json:"completed_at"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ActivityResponse is one audit entry.
type ActivityResponse struct {
	ID         string               `json:"id"`
	Type       domain.ActivityType  `json:"type"`
	FromStatus *domain.RepairStatus `json:"from_status"`
	ToStatus   *domain.RepairStatus `json:"to_status"`
	Note       *string              `json:"note"`
	CreatedAt  time.Time            `json:"created_at"`
}

// NewRepairResponse maps a domain repair.
func NewRepairResponse(repair *domain.Repair) RepairResponse {
	return RepairResponse{
		ID:               repair.ID,
		Status:           repair.Status,
		Customer:         repair.Customer,
		Item:             repair.Item,
		IssueDescription: repair.IssueDescription,
		ReceivedAt:       repair.ReceivedAt,
		CompletedAt:      repair.CompletedAt,
		CreatedAt:        repair.CreatedAt,
	}
}

// NewActivityResponse maps an audit entry.
func NewActivityResponse(activity *domain.RepairActivity) ActivityResponse {
	return ActivityResponse{
		ID:         activity.ID,
		Type:       activity.Type,
		FromStatus: activity.FromStatus,
		ToStatus:   activity.ToStatus,
		Note:       activity.Note,
		CreatedAt:  activity.CreatedAt,
	}
}
