package dto

import (
	"time"

	"github.com/spec-kit/agent-onboarding/internal/domain"
)

// CreateBatchRequest payload.
type CreateBatchRequest struct {
	Name     string           `json:"name"`
	Type     domain.BatchType `json:"type"`
	AgentIDs []string         `json:"agent_ids"`
}

// BatchResponse response.
type BatchResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        domain.BatchType   `json:"type"`
	AgentIDs    []string           `json:"agent_ids"`
	AgentCount  int                `json:"agent_count"`
	Status      domain.BatchStatus `json:"status"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}
