package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/events"
	"github.com/spec-kit/agent-onboarding/internal/repository"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

// rejectedDefaultComment is stored when a request is rejected without comment.
const rejectedDefaultComment = "Rejected"

// approvalEffect describes the agent status applied when a request of a given
// type is resolved. Nil means the resolution leaves the agent untouched.
type approvalEffect struct {
	onApprove     *domain.AgentStatus
	onReject      *domain.AgentStatus
	stampApproval bool
}

// approvalEffects maps request types to their agent side effects. Only
// onboarding drives the agent lifecycle today; adding effects for the other
// request types is a data change here, not new control flow.
var approvalEffects = map[domain.RequestType]approvalEffect{
	domain.RequestTypeOnboarding: {
		onApprove:     statusPtr(domain.AgentStatusActive),
		onReject:      statusPtr(domain.AgentStatusTerminated),
		stampApproval: true,
	},
	domain.RequestTypeMovement:      {},
	domain.RequestTypeTermination:   {},
	domain.RequestTypeSuspension:    {},
	domain.RequestTypeReinstatement: {},
}

func statusPtr(status domain.AgentStatus) *domain.AgentStatus {
	return &status
}

// ApprovalService owns the approval request workflow.
type ApprovalService struct {
	approvals  repository.ApprovalRepository
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
}

// ApprovalDependencies bundles repositories for the approval service.
type ApprovalDependencies struct {
	ApprovalRepo repository.ApprovalRepository
	AgentRepo    repository.AgentRepository
	Dispatcher   events.Dispatcher
}

// ApprovalCreateInput describes a new approval request.
type ApprovalCreateInput struct {
	AgentID     string
	RequestType domain.RequestType
	RequestedBy string
}

// ApprovalListFilter narrows ListRequests; nil fields match everything.
type ApprovalListFilter struct {
	RequestType *domain.RequestType
	Status      *domain.ApprovalStatus
}

// NewApprovalService constructs the service.
func NewApprovalService(deps ApprovalDependencies) *ApprovalService {
	return &ApprovalService{
		approvals:  deps.ApprovalRepo,
		agents:     deps.AgentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateRequest opens a pending approval request for an agent. The agent's
// display name is snapshotted onto the request.
func (s *ApprovalService) CreateRequest(ctx context.Context, input ApprovalCreateInput) (*domain.ApprovalRequest, error) {
	if !domain.ValidRequestType(input.RequestType) {
		return nil, apperrors.NewValidationError("unknown request type", map[string]any{"request_type": input.RequestType})
	}
	agent, err := s.agents.GetByID(ctx, input.AgentID)
	if err != nil {
		return nil, err
	}

	request := &domain.ApprovalRequest{
		AgentID:     agent.ID,
		AgentName:   agent.FullName(),
		RequestType: input.RequestType,
		RequestedBy: input.RequestedBy,
		Status:      domain.ApprovalStatusPending,
	}
	if err := s.approvals.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListRequests returns requests in insertion order, optionally filtered by
// type and status.
func (s *ApprovalService) ListRequests(ctx context.Context, filter ApprovalListFilter) ([]domain.ApprovalRequest, error) {
	return s.approvals.List(ctx, repository.ApprovalFilter{
		RequestType: filter.RequestType,
		Status:      filter.Status,
	})
}

// GetRequest fetches a single approval request.
func (s *ApprovalService) GetRequest(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	return s.approvals.GetByID(ctx, id)
}

// Resolve settles a pending request with the given outcome. The agent side
// effect, when the request type has one, is written before the request record
// so readers never see a resolved request with a stale agent. Resolving a
// non-pending request fails and leaves the agent untouched.
func (s *ApprovalService) Resolve(ctx context.Context, requestID string, outcome domain.ApprovalStatus, resolvedBy, comment string) (*domain.ApprovalRequest, error) {
	if outcome != domain.ApprovalStatusApproved && outcome != domain.ApprovalStatusRejected {
		return nil, apperrors.NewValidationError("outcome must be approved or rejected", nil)
	}

	request, err := s.approvals.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.ApprovalStatusPending {
		return nil, apperrors.NewInvalidState("approval request already resolved")
	}

	now := time.Now()
	if err := s.applyAgentEffect(ctx, request, outcome, now); err != nil {
		return nil, err
	}

	comment = strings.TrimSpace(comment)
	if comment == "" && outcome == domain.ApprovalStatusRejected {
		comment = rejectedDefaultComment
	}

	request.Status = outcome
	request.ResolvedBy = &resolvedBy
	request.ResolvedAt = &now
	if comment != "" {
		request.Comments = &comment
	}
	if err := s.approvals.Update(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, resolvedBy, events.ApprovalResolvedPayload{
		RequestID:   request.ID,
		AgentID:     request.AgentID,
		RequestType: request.RequestType,
		Outcome:     outcome,
	})
	return request, nil
}

func (s *ApprovalService) applyAgentEffect(ctx context.Context, request *domain.ApprovalRequest, outcome domain.ApprovalStatus, resolvedAt time.Time) error {
	effect := approvalEffects[request.RequestType]

	var target *domain.AgentStatus
	stamp := false
	if outcome == domain.ApprovalStatusApproved {
		target = effect.onApprove
		stamp = effect.stampApproval
	} else {
		target = effect.onReject
	}
	if target == nil {
		return nil
	}

	agent, err := s.agents.GetByID(ctx, request.AgentID)
	if err != nil {
		return err
	}
	agent.Status = *target
	if stamp {
		agent.ApprovedAt = &resolvedAt
	}
	return s.agents.Update(ctx, agent)
}

func (s *ApprovalService) publish(ctx context.Context, actor string, payload events.ApprovalResolvedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApprovalResolved,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
