package domain

import "time"

// BatchType enumerates bulk status-change actions.
type BatchType string

const (
	BatchTypeTermination   BatchType = "termination"
	BatchTypeSuspension    BatchType = "suspension"
	BatchTypeReinstatement BatchType = "reinstatement"
	BatchTypeTransfer      BatchType = "transfer"
)

// ValidBatchType reports whether t is a known batch type.
func ValidBatchType(t BatchType) bool {
	switch t {
	case BatchTypeTermination, BatchTypeSuspension, BatchTypeReinstatement, BatchTypeTransfer:
		return true
	}
	return false
}

// BatchStatus enumerates batch job execution states.
type BatchStatus string

const (
	BatchStatusPending    BatchStatus = "pending"
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
)

// BatchAgentStatus maps a batch type to the agent status it applies.
// The mapping is total over the four batch types.
var BatchAgentStatus = map[BatchType]AgentStatus{
	BatchTypeTermination:   AgentStatusTerminated,
	BatchTypeSuspension:    AgentStatusSuspended,
	BatchTypeReinstatement: AgentStatusActive,
	BatchTypeTransfer:      AgentStatusActive,
}

// BatchJob is a bulk status change over a fixed set of agents.
// AgentIDs is snapshotted at creation and never re-resolved at execution time.
type BatchJob struct {
	ID          string
	Name        string
	Type        BatchType
	AgentIDs    []string
	AgentCount  int
	Status      BatchStatus
	CreatedBy   string
	CreatedAt   time.Time
	CompletedAt *time.Time
}
