package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/repository"
	"github.com/spec-kit/agent-onboarding/internal/repository/memory"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

func newAgentFixtures() (*AgentService, *memory.AgentRepository, *memory.ApprovalRepository) {
	agents := memory.NewAgentRepository()
	approvals := memory.NewApprovalRepository()
	svc := NewAgentService(AgentDependencies{
		AgentRepo:    agents,
		ApprovalRepo: approvals,
	})
	return svc, agents, approvals
}

// validAgentInput builds a submission that passes all field checks; n keeps
// the unique identifiers distinct across fixtures.
func validAgentInput(n int) AgentInput {
	return AgentInput{
		FirstName:       "Priya",
		LastName:        "Sharma",
		DateOfBirth:     time.Date(1994, time.March, 12, 0, 0, 0, 0, time.UTC),
		Gender:          domain.GenderFemale,
		Email:           fmt.Sprintf("priya.sharma%d@example.com", n),
		Mobile:          fmt.Sprintf("98765432%02d", n),
		PANCard:         fmt.Sprintf("ABCPS12%02dD", n),
		AadhaarCard:     fmt.Sprintf("1234567890%02d", n),
		Qualification:   "MBA",
		ExperienceYears: 3,
		City:            "Mumbai",
		State:           "Maharashtra",
		Pincode:         "400001",
		BankName:        "HDFC Bank",
		AccountNumber:   "123456789012",
		IFSCCode:        "HDFC0001234",
		Designation:     "Sales Agent",
		SourceOfHiring:  "Job Portal",
		PriorInsurance:  false,
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	return apperrors.ToDomainError(err).Code
}

func TestCreateAgentOpensOnboardingRequest(t *testing.T) {
	svc, _, approvals := newAgentFixtures()
	ctx := context.Background()

	agent, err := svc.CreateAgent(ctx, "Data Operator", validAgentInput(1))
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if agent.Status != domain.AgentStatusPending {
		t.Fatalf("new agent status = %q, want pending", agent.Status)
	}
	if agent.AgentCode != "AFLI001234" {
		t.Fatalf("agent code = %q, want AFLI001234", agent.AgentCode)
	}
	if agent.QScore <= 50 {
		t.Fatalf("q-score = %d, want credential and experience bonuses applied", agent.QScore)
	}

	requests, err := approvals.List(ctx, repository.ApprovalFilter{})
	if err != nil {
		t.Fatalf("List approvals: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("approval requests = %d, want 1", len(requests))
	}
	req := requests[0]
	if req.RequestType != domain.RequestTypeOnboarding {
		t.Fatalf("request type = %q, want onboarding", req.RequestType)
	}
	if req.Status != domain.ApprovalStatusPending {
		t.Fatalf("request status = %q, want pending", req.Status)
	}
	if req.AgentID != agent.ID {
		t.Fatalf("request agent id = %q, want %q", req.AgentID, agent.ID)
	}
	if req.AgentName != "Priya Sharma" {
		t.Fatalf("request agent name = %q, want snapshot of full name", req.AgentName)
	}
}

func TestCreateAgentSequentialCodes(t *testing.T) {
	svc, _, _ := newAgentFixtures()
	ctx := context.Background()

	first, err := svc.CreateAgent(ctx, "op", validAgentInput(1))
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	second, err := svc.CreateAgent(ctx, "op", validAgentInput(2))
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if first.AgentCode != "AFLI001234" || second.AgentCode != "AFLI001235" {
		t.Fatalf("codes = %q, %q; want AFLI001234, AFLI001235", first.AgentCode, second.AgentCode)
	}
}

func TestCreateAgentValidation(t *testing.T) {
	svc, _, _ := newAgentFixtures()
	ctx := context.Background()

	input := validAgentInput(1)
	input.FirstName = " "
	input.Email = "not-an-email"
	input.Mobile = "12345"
	input.PANCard = "BAD"

	_, err := svc.CreateAgent(ctx, "op", input)
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("error code = %q, want VALIDATION_FAILED", code)
	}
	details := apperrors.ToDomainError(err).Details
	for _, field := range []string{"first_name", "email", "mobile", "pan_card"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected issue for %q, got %v", field, details)
		}
	}
}

func TestCreateAgentLowercasePANAccepted(t *testing.T) {
	svc, _, _ := newAgentFixtures()
	ctx := context.Background()

	input := validAgentInput(1)
	input.PANCard = "abcps1201d"
	agent, err := svc.CreateAgent(ctx, "op", input)
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if agent.PANCard != "ABCPS1201D" {
		t.Fatalf("stored PAN = %q, want normalized uppercase", agent.PANCard)
	}
}

func TestCreateAgentDuplicatePAN(t *testing.T) {
	svc, _, _ := newAgentFixtures()
	ctx := context.Background()

	if _, err := svc.CreateAgent(ctx, "op", validAgentInput(1)); err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}

	input := validAgentInput(2)
	input.PANCard = validAgentInput(1).PANCard
	_, err := svc.CreateAgent(ctx, "op", input)
	if code := domainCode(t, err); code != "DUPLICATE" {
		t.Fatalf("error code = %q, want DUPLICATE", code)
	}
}

func TestIsDuplicate(t *testing.T) {
	svc, _, _ := newAgentFixtures()
	ctx := context.Background()

	agent, err := svc.CreateAgent(ctx, "op", validAgentInput(1))
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}

	dup, err := svc.IsDuplicate(ctx, DuplicateFieldEmail, agent.Email, "")
	if err != nil {
		t.Fatalf("IsDuplicate: %v", err)
	}
	if !dup {
		t.Fatalf("existing email should be reported as duplicate")
	}

	// Editing a record back to its own value never collides.
	dup, err = svc.IsDuplicate(ctx, DuplicateFieldEmail, agent.Email, agent.ID)
	if err != nil {
		t.Fatalf("IsDuplicate: %v", err)
	}
	if dup {
		t.Fatalf("own record should be excluded from the duplicate check")
	}

	dup, err = svc.IsDuplicate(ctx, DuplicateFieldEmail, "", "")
	if err != nil {
		t.Fatalf("IsDuplicate: %v", err)
	}
	if dup {
		t.Fatalf("empty value should never be a duplicate")
	}
}

func TestUpdateAgentPreservesLifecycle(t *testing.T) {
	svc, agents, _ := newAgentFixtures()
	ctx := context.Background()

	agent, err := svc.CreateAgent(ctx, "op", validAgentInput(1))
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	approvedAt := time.Now()
	if err := svc.ApplyStatus(ctx, agent.ID, domain.AgentStatusActive, &approvedAt); err != nil {
		t.Fatalf("ApplyStatus: %v", err)
	}

	input := validAgentInput(1)
	input.City = "Pune"
	input.Qualification = "BA"
	updated, err := svc.UpdateAgent(ctx, agent.ID, input)
	if err != nil {
		t.Fatalf("UpdateAgent: %v", err)
	}

	if updated.Status != domain.AgentStatusActive {
		t.Fatalf("update must not touch status, got %q", updated.Status)
	}
	if updated.AgentCode != agent.AgentCode {
		t.Fatalf("update must not reissue the agent code")
	}
	if updated.ApprovedAt == nil {
		t.Fatalf("update must keep the approval stamp")
	}
	if updated.City != "Pune" {
		t.Fatalf("city = %q, want Pune", updated.City)
	}
	if updated.QScore >= agent.QScore {
		t.Fatalf("downgrading the qualification should lower the q-score: %d -> %d", agent.QScore, updated.QScore)
	}

	stored, err := agents.GetByID(ctx, agent.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.City != "Pune" {
		t.Fatalf("stored city = %q, want Pune", stored.City)
	}
}

func TestApplyStatusIdempotent(t *testing.T) {
	svc, _, _ := newAgentFixtures()
	ctx := context.Background()

	agent, err := svc.CreateAgent(ctx, "op", validAgentInput(1))
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if err := svc.ApplyStatus(ctx, agent.ID, domain.AgentStatusPending, nil); err != nil {
		t.Fatalf("re-applying the current status should be a no-op, got %v", err)
	}
}
