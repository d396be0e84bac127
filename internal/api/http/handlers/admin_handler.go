package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-service/internal/api/dto"
	"github.com/spec-kit/repair-service/internal/auth"
	"github.com/spec-kit/repair-service/internal/service"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

// AdminHandler exposes bootstrap and workspace provisioning endpoints.
type AdminHandler struct {
	authService      *service.AuthService
	workspaceService *service.WorkspaceService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, workspaceService *service.WorkspaceService) *AdminHandler {
	return &AdminHandler{authService: authService, workspaceService: workspaceService}
}

// Bootstrap POST /admin/v1/superadmin/bootstrap.
func (h *AdminHandler) Bootstrap(c *fiber.Ctx) error {
	var req dto.BootstrapRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "body_is_invalid"})
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.BootstrapSuperadmin(c.UserContext(), service.BootstrapInput{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		TelephoneNumber: req.TelephoneNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// CreateWorkspace POST /admin/v1/workspaces.
func (h *AdminHandler) CreateWorkspace(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user_required")
	}
	var req dto.CreateWorkspaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "body_is_invalid"})
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	workspace, owner, err := h.workspaceService.CreateWorkspace(c.UserContext(), principal.User.ID, service.CreateWorkspaceInput{
		Name: req.Name,
		Owner: service.PersonInput{
			Email:           req.Owner.Email,
			Password:        req.Owner.Password,
			FirstName:       req.Owner.FirstName,
			LastName:        req.Owner.LastName,
			TelephoneNumber: req.Owner.TelephoneNumber,
		},
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"workspace": dto.WorkspaceResponse{
			ID:          workspace.ID,
			Name:        workspace.Name,
			OwnerUserID: workspace.OwnerUserID,
		},
		"owner": dto.NewUserResponse(owner),
	}})
}
