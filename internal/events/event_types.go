package events

import (
	"time"

	"github.com/spec-kit/agent-onboarding/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAgentCreated       EventType = "agent_created"
	EventAgentStatusChanged EventType = "agent_status_changed"
	EventApprovalResolved   EventType = "approval_resolved"
	EventBatchCompleted     EventType = "batch_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AgentCreatedPayload payload.
type AgentCreatedPayload struct {
	AgentID   string             `json:"agent_id"`
	AgentCode string             `json:"agent_code"`
	QScore    int                `json:"q_score"`
	Status    domain.AgentStatus `json:"status"`
}

// AgentStatusChangedPayload payload.
type AgentStatusChangedPayload struct {
	AgentID   string             `json:"agent_id"`
	OldStatus domain.AgentStatus `json:"old_status"`
	NewStatus domain.AgentStatus `json:"new_status"`
}

// ApprovalResolvedPayload payload.
type ApprovalResolvedPayload struct {
	RequestID   string                `json:"request_id"`
	AgentID     string                `json:"agent_id"`
	RequestType domain.RequestType    `json:"request_type"`
	Outcome     domain.ApprovalStatus `json:"outcome"`
}

// BatchCompletedPayload payload.
type BatchCompletedPayload struct {
	BatchID    string             `json:"batch_id"`
	Type       domain.BatchType   `json:"type"`
	Status     domain.BatchStatus `json:"status"`
	AgentCount int                `json:"agent_count"`
}
