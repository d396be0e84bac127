package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/repair-service/internal/domain"
	"github.com/spec-kit/repair-service/internal/events"
	"github.com/spec-kit/repair-service/internal/repository"
	"github.com/spec-kit/repair-service/internal/sms"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

// RepairService coordinates the repair lifecycle and its audit trail.
type RepairService struct {
	repairs    repository.RepairRepository
	activity   repository.RepairActivityRepository
	dispatcher events.Dispatcher
	sender     sms.Sender
}

// RepairDependencies bundles collaborators for the repair service.
type RepairDependencies struct {
	RepairRepo   repository.RepairRepository
	ActivityRepo repository.RepairActivityRepository
	Dispatcher   events.Dispatcher
	Sender       sms.Sender
}

// NewRepairService constructs the service.
func NewRepairService(deps RepairDependencies) *RepairService {
	return &RepairService{
		repairs:    deps.RepairRepo,
		activity:   deps.ActivityRepo,
		dispatcher: deps.Dispatcher,
		sender:     deps.Sender,
	}
}

// RepairCreateInput describes repair creation payload.
type RepairCreateInput struct {
	Customer         domain.Customer
	Item             domain.Item
	IssueDescription string
	// Message, when present, is sent to the customer as a fire-and-forget SMS.
	Message string
}

// CreateRepair opens a ticket in in_progress and appends the created activity.
func (s *RepairService) CreateRepair(ctx context.Context, workspaceID, creatorUserID string, input RepairCreateInput) (*domain.Repair, error) {
	repair := &domain.Repair{
		WorkspaceID:      workspaceID,
		CreatedByUserID:  creatorUserID,
		Status:           domain.RepairStatusInProgress,
		Customer:         input.Customer,
		Item:             input.Item,
		IssueDescription: strings.TrimSpace(input.IssueDescription),
		ReceivedAt:       time.Now(),
	}
	if err := s.repairs.Create(ctx, repair); err != nil {
		return nil, err
	}

	toStatus := repair.Status
	if err := s.activity.Create(ctx, &domain.RepairActivity{
		RepairID:    repair.ID,
		WorkspaceID: repair.WorkspaceID,
		ActorUserID: &creatorUserID,
		Type:        domain.ActivityCreated,
		ToStatus:    &toStatus,
	}); err != nil {
		return nil, err
	}

	if msg := strings.TrimSpace(input.Message); msg != "" && repair.Customer.TelephoneNumber != "" {
		s.dispatcher.Publish(ctx, events.Event{
			Type:        events.EventRepairCreated,
			WorkspaceID: repair.WorkspaceID,
			RepairID:    repair.ID,
			ActorUserID: &creatorUserID,
			Customer:    repair.Customer,
			Message:     msg,
		})
	}
	return repair, nil
}

// ListRepairs returns workspace repairs, newest first, optionally filtered by status.
func (s *RepairService) ListRepairs(ctx context.Context, workspaceID string, status *domain.RepairStatus) ([]domain.Repair, error) {
	return s.repairs.ListWithFilter(ctx, repository.RepairFilter{
		WorkspaceID: workspaceID,
		Status:      status,
	})
}

// GetRepair fetches one repair within the workspace scope.
func (s *RepairService) GetRepair(ctx context.Context, workspaceID, repairID string) (*domain.Repair, error) {
	repair, err := s.repairs.GetByID(ctx, workspaceID, repairID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("repair_not_found")
		}
		return nil, err
	}
	return repair, nil
}

// CompleteRepair performs the in_progress -> completed transition. Completing
// an already-completed repair is a no-op: the current record is returned, no
// duplicate activity is appended and no notification fires.
func (s *RepairService) CompleteRepair(ctx context.Context, workspaceID, repairID, actorUserID, message string) (*domain.Repair, error) {
	repair, transitioned, err := s.repairs.Complete(ctx, workspaceID, repairID, &actorUserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("repair_not_found")
		}
		return nil, err
	}

	if msg := strings.TrimSpace(message); transitioned && msg != "" && repair.Customer.TelephoneNumber != "" {
		s.dispatcher.Publish(ctx, events.Event{
			Type:        events.EventRepairCompleted,
			WorkspaceID: repair.WorkspaceID,
			RepairID:    repair.ID,
			ActorUserID: &actorUserID,
			Customer:    repair.Customer,
			Message:     msg,
		})
	}
	return repair, nil
}

// AddNote appends a note_added audit entry without touching repair status.
func (s *RepairService) AddNote(ctx context.Context, workspaceID, repairID, actorUserID, note string) (*domain.RepairActivity, error) {
	repair, err := s.GetRepair(ctx, workspaceID, repairID)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(note)
	activity := &domain.RepairActivity{
		RepairID:    repair.ID,
		WorkspaceID: repair.WorkspaceID,
		ActorUserID: &actorUserID,
		Type:        domain.ActivityNoteAdded,
		Note:        &trimmed,
	}
	if err := s.activity.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// ListActivity returns the repair's audit trail, newest first.
func (s *RepairService) ListActivity(ctx context.Context, workspaceID, repairID string) ([]domain.RepairActivity, error) {
	if _, err := s.GetRepair(ctx, workspaceID, repairID); err != nil {
		return nil, err
	}
	return s.activity.ListByRepair(ctx, workspaceID, repairID)
}

// SendCustomerMessage delivers an SMS to the repair's customer synchronously.
// Unlike the lifecycle triggers, provider failures here surface to the caller.
func (s *RepairService) SendCustomerMessage(ctx context.Context, workspaceID, repairID, message string) (bool, error) {
	repair, err := s.GetRepair(ctx, workspaceID, repairID)
	if err != nil {
		return false, err
	}
	if repair.Customer.TelephoneNumber == "" {
		return false, apperrors.NewDomainRule("customer_telephone_number_missing")
	}

	result, err := s.sender.Send(ctx, message, repair.Customer.TelephoneNumber)
	if err != nil {
		return false, apperrors.NewBadGateway("sms_send_failed", err)
	}
	return result.Skipped, nil
}
