package domain

import "time"

// RequestType enumerates approval request categories.
type RequestType string

const (
	RequestTypeOnboarding    RequestType = "onboarding"
	RequestTypeMovement      RequestType = "movement"
	RequestTypeTermination   RequestType = "termination"
	RequestTypeSuspension    RequestType = "suspension"
	RequestTypeReinstatement RequestType = "reinstatement"
)

// ValidRequestType reports whether t is a known request type.
func ValidRequestType(t RequestType) bool {
	switch t {
	case RequestTypeOnboarding, RequestTypeMovement, RequestTypeTermination,
		RequestTypeSuspension, RequestTypeReinstatement:
		return true
	}
	return false
}

// ApprovalStatus enumerates approval request states.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// ApprovalRequest records an intent to change an agent's lifecycle state.
// Once resolved it is immutable; the linked agent stays the source of truth
// for current status.
type ApprovalRequest struct {
	ID          string
	AgentID     string
	AgentName   string
	RequestType RequestType
	RequestedBy string
	RequestedAt time.Time
	Status      ApprovalStatus
	ResolvedBy  *string
	ResolvedAt  *time.Time
	Comments    *string
}
