package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-onboarding/internal/api/dto"
	"github.com/spec-kit/agent-onboarding/internal/auth"
	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/service"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

// ApprovalsHandler manages approval workflow endpoints.
type ApprovalsHandler struct {
	service *service.ApprovalService
}

// NewApprovalsHandler constructs handler.
func NewApprovalsHandler(approvalService *service.ApprovalService) *ApprovalsHandler {
	return &ApprovalsHandler{service: approvalService}
}

// CreateRequest POST /approvals.
func (h *ApprovalsHandler) CreateRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.CreateApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.service.CreateRequest(c.Context(), service.ApprovalCreateInput{
		AgentID:     req.AgentID,
		RequestType: req.RequestType,
		RequestedBy: principal.User.Name,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": approvalResponse(request)})
}

// ListRequests GET /approvals.
func (h *ApprovalsHandler) ListRequests(c *fiber.Ctx) error {
	filter := service.ApprovalListFilter{}
	if typeStr := c.Query("request_type"); typeStr != "" {
		requestType := domain.RequestType(typeStr)
		filter.RequestType = &requestType
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ApprovalStatus(statusStr)
		filter.Status = &status
	}

	requests, err := h.service.ListRequests(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ApprovalResponse, 0, len(requests))
	for i := range requests {
		items = append(items, approvalResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetRequest GET /approvals/:id.
func (h *ApprovalsHandler) GetRequest(c *fiber.Ctx) error {
	request, err := h.service.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": approvalResponse(request)})
}

// Approve POST /approvals/:id/approve.
func (h *ApprovalsHandler) Approve(c *fiber.Ctx) error {
	return h.resolve(c, domain.ApprovalStatusApproved)
}

// Reject POST /approvals/:id/reject.
func (h *ApprovalsHandler) Reject(c *fiber.Ctx) error {
	return h.resolve(c, domain.ApprovalStatusRejected)
}

func (h *ApprovalsHandler) resolve(c *fiber.Ctx, outcome domain.ApprovalStatus) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.ResolveApprovalRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	request, err := h.service.Resolve(c.Context(), c.Params("id"), outcome, principal.User.Name, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": approvalResponse(request)})
}

func approvalResponse(request *domain.ApprovalRequest) dto.ApprovalResponse {
	return dto.ApprovalResponse{
		ID:          request.ID,
		AgentID:     request.AgentID,
		AgentName:   request.AgentName,
		RequestType: request.RequestType,
		RequestedBy: request.RequestedBy,
		RequestedAt: request.RequestedAt,
		Status:      request.Status,
		ResolvedBy:  request.ResolvedBy,
		ResolvedAt:  request.ResolvedAt,
		Comments:    request.Comments,
	}
}
