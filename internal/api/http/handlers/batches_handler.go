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

// BatchesHandler manages bulk action endpoints.
type BatchesHandler struct {
	service *service.BatchService
}

// NewBatchesHandler constructs handler.
func NewBatchesHandler(batchService *service.BatchService) *BatchesHandler {
	return &BatchesHandler{service: batchService}
}

// CreateBatch POST /batches.
func (h *BatchesHandler) CreateBatch(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	batch, err := h.service.CreateBatch(c.Context(), service.BatchCreateInput{
		Name:      req.Name,
		Type:      req.Type,
		AgentIDs:  req.AgentIDs,
		CreatedBy: principal.User.Name,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": batchResponse(batch)})
}

// ListBatches GET /batches.
func (h *BatchesHandler) ListBatches(c *fiber.Ctx) error {
	batches, err := h.service.ListBatches(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		items = append(items, batchResponse(&batches[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetBatch GET /batches/:id.
func (h *BatchesHandler) GetBatch(c *fiber.Ctx) error {
	batch, err := h.service.GetBatch(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": batchResponse(batch)})
}

// Execute POST /batches/:id/execute.
func (h *BatchesHandler) Execute(c *fiber.Ctx) error {
	batch, err := h.service.Execute(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": batchResponse(batch)})
}

func batchResponse(batch *domain.BatchJob) dto.BatchResponse {
	return dto.BatchResponse{
		ID:          batch.ID,
		Name:        batch.Name,
		Type:        batch.Type,
		AgentIDs:    batch.AgentIDs,
		AgentCount:  batch.AgentCount,
		Status:      batch.Status,
		CreatedBy:   batch.CreatedBy,
		CreatedAt:   batch.CreatedAt,
		CompletedAt: batch.CompletedAt,
	}
}
