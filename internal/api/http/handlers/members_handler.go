package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-service/internal/api/dto"
	"github.com/spec-kit/repair-service/internal/auth"
	"github.com/spec-kit/repair-service/internal/domain"
	"github.com/spec-kit/repair-service/internal/service"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

// MembersHandler manages workspace membership endpoints.
type MembersHandler struct {
	service *service.WorkspaceService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(workspaceService *service.WorkspaceService) *MembersHandler {
	return &MembersHandler{service: workspaceService}
}

// List GET /workspaces/:workspace_id/members.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	members, err := h.service.ListMembers(c.UserContext(), workspace.ID)
	if err != nil {
		return err
	}
	items := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		items = append(items, memberResponse(&members[i].Member, &members[i].User))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Add POST /workspaces/:workspace_id/members.
func (h *MembersHandler) Add(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user_required")
	}
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "body_is_invalid"})
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	input := service.AddMemberInput{
		Person: service.PersonInput{
			Email:           req.Email,
			Password:        req.Password,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			TelephoneNumber: req.TelephoneNumber,
		},
	}
	if req.Role != nil {
		input.Role = *req.Role
	}

	member, created, err := h.service.AddMember(c.UserContext(), workspace.ID, principal.User.ID, input)
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": memberResponse(member, nil)})
}

// Remove DELETE /workspaces/:workspace_id/members/:member_id.
func (h *MembersHandler) Remove(c *fiber.Ctx) error {
	workspace, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return apperrors.NewNotFound("workspace_not_found")
	}
	if err := h.service.RemoveMember(c.UserContext(), workspace.ID, c.Params("member_id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func memberResponse(member *domain.WorkspaceMember, user *domain.User) dto.MemberResponse {
	resp := dto.MemberResponse{
		ID:        member.ID,
		Role:      member.Role,
		Status:    member.Status,
		JoinedAt:  member.JoinedAt,
		CreatedAt: member.CreatedAt,
	}
	if user != nil {
		userResp := dto.NewUserResponse(user)
		resp.User = &userResp
	}
	return resp
}
