package service

import (
	"context"
	"testing"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/repository/memory"
)

func newApprovalFixtures(t *testing.T) (*ApprovalService, *AgentService, *memory.AgentRepository) {
	t.Helper()
	agents := memory.NewAgentRepository()
	approvals := memory.NewApprovalRepository()
	agentSvc := NewAgentService(AgentDependencies{
		AgentRepo:    agents,
		ApprovalRepo: approvals,
	})
	approvalSvc := NewApprovalService(ApprovalDependencies{
		ApprovalRepo: approvals,
		AgentRepo:    agents,
	})
	return approvalSvc, agentSvc, agents
}

// onboardAgent creates an agent and returns it with its pending onboarding
// request.
func onboardAgent(t *testing.T, agentSvc *AgentService, approvalSvc *ApprovalService, n int) (*domain.Agent, *domain.ApprovalRequest) {
	t.Helper()
	ctx := context.Background()
	agent, err := agentSvc.CreateAgent(ctx, "Data Operator", validAgentInput(n))
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	requests, err := approvalSvc.ListRequests(ctx, ApprovalListFilter{})
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	for i := range requests {
		if requests[i].AgentID == agent.ID {
			return agent, &requests[i]
		}
	}
	t.Fatalf("no onboarding request created for agent %s", agent.ID)
	return nil, nil
}

func TestResolveApproveActivatesAgent(t *testing.T) {
	approvalSvc, agentSvc, agents := newApprovalFixtures(t)
	ctx := context.Background()
	agent, request := onboardAgent(t, agentSvc, approvalSvc, 1)

	resolved, err := approvalSvc.Resolve(ctx, request.ID, domain.ApprovalStatusApproved, "Operations Manager", "looks good")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Status != domain.ApprovalStatusApproved {
		t.Fatalf("request status = %q, want approved", resolved.Status)
	}
	if resolved.ResolvedBy == nil || *resolved.ResolvedBy != "Operations Manager" {
		t.Fatalf("resolved by = %v, want Operations Manager", resolved.ResolvedBy)
	}
	if resolved.ResolvedAt == nil {
		t.Fatalf("resolved at must be stamped")
	}
	if resolved.Comments == nil || *resolved.Comments != "looks good" {
		t.Fatalf("comments = %v, want 'looks good'", resolved.Comments)
	}

	stored, err := agents.GetByID(ctx, agent.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != domain.AgentStatusActive {
		t.Fatalf("agent status = %q, want active", stored.Status)
	}
	if stored.ApprovedAt == nil {
		t.Fatalf("approval must stamp ApprovedAt on the agent")
	}
}

func TestResolveRejectDefaultsComment(t *testing.T) {
	approvalSvc, agentSvc, agents := newApprovalFixtures(t)
	ctx := context.Background()
	agent, request := onboardAgent(t, agentSvc, approvalSvc, 1)

	resolved, err := approvalSvc.Resolve(ctx, request.ID, domain.ApprovalStatusRejected, "Operations Manager", "  ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Comments == nil || *resolved.Comments != "Rejected" {
		t.Fatalf("comments = %v, want default 'Rejected'", resolved.Comments)
	}

	stored, err := agents.GetByID(ctx, agent.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != domain.AgentStatusTerminated {
		t.Fatalf("rejected onboarding should terminate the agent, got %q", stored.Status)
	}
	if stored.ApprovedAt != nil {
		t.Fatalf("rejection must not stamp ApprovedAt")
	}
}

func TestResolveTwiceFails(t *testing.T) {
	approvalSvc, agentSvc, agents := newApprovalFixtures(t)
	ctx := context.Background()
	agent, request := onboardAgent(t, agentSvc, approvalSvc, 1)

	if _, err := approvalSvc.Resolve(ctx, request.ID, domain.ApprovalStatusApproved, "mgr", ""); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	_, err := approvalSvc.Resolve(ctx, request.ID, domain.ApprovalStatusRejected, "mgr", "")
	if code := domainCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("error code = %q, want INVALID_STATE", code)
	}

	// The losing resolution must leave the agent untouched.
	stored, err := agents.GetByID(ctx, agent.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != domain.AgentStatusActive {
		t.Fatalf("agent status = %q, want active from the first resolution", stored.Status)
	}
}

func TestResolveInvalidOutcome(t *testing.T) {
	approvalSvc, agentSvc, _ := newApprovalFixtures(t)
	ctx := context.Background()
	_, request := onboardAgent(t, agentSvc, approvalSvc, 1)

	_, err := approvalSvc.Resolve(ctx, request.ID, domain.ApprovalStatusPending, "mgr", "")
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("error code = %q, want VALIDATION_FAILED", code)
	}
}

func TestResolveNonOnboardingLeavesAgent(t *testing.T) {
	approvalSvc, agentSvc, agents := newApprovalFixtures(t)
	ctx := context.Background()
	agent, onboarding := onboardAgent(t, agentSvc, approvalSvc, 1)
	if _, err := approvalSvc.Resolve(ctx, onboarding.ID, domain.ApprovalStatusApproved, "mgr", ""); err != nil {
		t.Fatalf("Resolve onboarding: %v", err)
	}

	request, err := approvalSvc.CreateRequest(ctx, ApprovalCreateInput{
		AgentID:     agent.ID,
		RequestType: domain.RequestTypeMovement,
		RequestedBy: "Data Operator",
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if _, err := approvalSvc.Resolve(ctx, request.ID, domain.ApprovalStatusApproved, "mgr", ""); err != nil {
		t.Fatalf("Resolve movement: %v", err)
	}

	stored, err := agents.GetByID(ctx, agent.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != domain.AgentStatusActive {
		t.Fatalf("movement approval must not change agent status, got %q", stored.Status)
	}
}

func TestCreateRequestUnknownType(t *testing.T) {
	approvalSvc, agentSvc, _ := newApprovalFixtures(t)
	ctx := context.Background()
	agent, _ := onboardAgent(t, agentSvc, approvalSvc, 1)

	_, err := approvalSvc.CreateRequest(ctx, ApprovalCreateInput{
		AgentID:     agent.ID,
		RequestType: domain.RequestType("promotion"),
		RequestedBy: "op",
	})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("error code = %q, want VALIDATION_FAILED", code)
	}
}

func TestListRequestsFiltered(t *testing.T) {
	approvalSvc, agentSvc, _ := newApprovalFixtures(t)
	ctx := context.Background()
	agent, _ := onboardAgent(t, agentSvc, approvalSvc, 1)

	if _, err := approvalSvc.CreateRequest(ctx, ApprovalCreateInput{
		AgentID:     agent.ID,
		RequestType: domain.RequestTypeSuspension,
		RequestedBy: "op",
	}); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	suspension := domain.RequestTypeSuspension
	requests, err := approvalSvc.ListRequests(ctx, ApprovalListFilter{RequestType: &suspension})
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if len(requests) != 1 || requests[0].RequestType != domain.RequestTypeSuspension {
		t.Fatalf("filtered requests = %+v, want single suspension request", requests)
	}
}
