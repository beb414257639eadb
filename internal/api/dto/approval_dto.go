package dto

import (
	"time"

	"github.com/spec-kit/agent-onboarding/internal/domain"
)

// CreateApprovalRequest payload.
type CreateApprovalRequest struct {
	AgentID     string             `json:"agent_id"`
	RequestType domain.RequestType `json:"request_type"`
}

// ResolveApprovalRequest payload.
type ResolveApprovalRequest struct {
	Comment string `json:"comment"`
}

// ApprovalResponse response.
type ApprovalResponse struct {
	ID          string                `json:"id"`
	AgentID     string                `json:"agent_id"`
	AgentName   string                `json:"agent_name"`
	RequestType domain.RequestType    `json:"request_type"`
	RequestedBy string                `json:"requested_by"`
	RequestedAt time.Time             `json:"requested_at"`
	Status      domain.ApprovalStatus `json:"status"`
	ResolvedBy  *string               `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time            `json:"resolved_at,omitempty"`
	Comments    *string               `json:"comments,omitempty"`
}
