package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-service/internal/api/dto"
	"github.com/spec-kit/repair-service/internal/auth"
	"github.com/spec-kit/repair-service/internal/domain"
	"github.com/spec-kit/repair-service/internal/service"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

// RepairsHandler manages repair ticket endpoints.
type RepairsHandler struct {
	service *service.RepairService
}

// NewRepairsHandler constructs handler.
func NewRepairsHandler(repairService *service.RepairService) *RepairsHandler {
	return &RepairsHandler{service: repairService}
}

// List GET /workspaces/:workspace_id/repairs.
func (h *RepairsHandler) List(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	var status *domain.RepairStatus
	if raw := c.Query("status"); raw != "" {
		parsed := domain.RepairStatus(raw)
		if parsed != domain.RepairStatusInProgress && parsed != domain.RepairStatusCompleted {
			return apperrors.NewValidationError(apperrors.FieldError{Field: "status", Message: "status_is_invalid"})
		}
		status = &parsed
	}
	repairs, err := h.service.ListRepairs(c.UserContext(), workspace.ID, status)
	if err != nil {
		return err
	}
	items := make([]dto.RepairResponse, 0, len(repairs))
	for i := range repairs {
		items = append(items, dto.NewRepairResponse(&repairs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /workspaces/:workspace_id/repairs.
func (h *RepairsHandler) Create(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user_required")
	}
	var req dto.CreateRepairRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "body_is_invalid"})
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	input := service.RepairCreateInput{
		Customer: domain.Customer{
			Name:            req.Customer.Name,
			TelephoneNumber: req.Customer.TelephoneNumber,
		},
		IssueDescription: req.IssueDescription,
	}
	if req.Item != nil {
		input.Item = domain.Item{
			Type:         req.Item.Type,
			Brand:        req.Item.Brand,
			Model:        req.Item.Model,
			SerialNumber: req.Item.SerialNumber,
		}
	}
	if req.Message != nil {
		input.Message = *req.Message
	}

	repair, err := h.service.CreateRepair(c.UserContext(), workspace.ID, principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRepairResponse(repair)})
}

// Get GET /workspaces/:workspace_id/repairs/:repair_id.
func (h *RepairsHandler) Get(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	repair, err := h.service.GetRepair(c.UserContext(), workspace.ID, c.Params("repair_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRepairResponse(repair)})
}

// Complete POST /workspaces/:workspace_id/repairs/:repair_id/complete.
func (h *RepairsHandler) Complete(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user_required")
	}
	var req dto.CompleteRepairRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "body_is_invalid"})
		}
	}
	message := ""
	if req.Message != nil {
		message = *req.Message
	}

	repair, err := h.service.CompleteRepair(c.UserContext(), workspace.ID, c.Params("repair_id"), principal.User.ID, message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRepairResponse(repair)})
}

// SendMessage POST /workspaces/:workspace_id/repairs/:repair_id/message.
func (h *RepairsHandler) SendMessage(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "body_is_invalid"})
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	skipped, err := h.service.SendCustomerMessage(c.UserContext(), workspace.ID, c.Params("repair_id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true, "skipped": skipped})
}

// AddNote POST /workspaces/:workspace_id/repairs/:repair_id/notes.
func (h *RepairsHandler) AddNote(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user_required")
	}
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "body_is_invalid"})
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	activity, err := h.service.AddNote(c.UserContext(), workspace.ID, c.Params("repair_id"), principal.User.ID, req.Note)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewActivityResponse(activity)})
}

// ListActivity GET /workspaces/:workspace_id/repairs/:repair_id/activity.
func (h *RepairsHandler) ListActivity(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	entries, err := h.service.ListActivity(c.UserContext(), workspace.ID, c.Params("repair_id"))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewActivityResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
