package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/repository/memory"
)

// recordingScheduler captures scheduled batch IDs instead of running them.
type recordingScheduler struct {
	scheduled []string
}

func (s *recordingScheduler) Schedule(batchID string) {
	s.scheduled = append(s.scheduled, batchID)
}

func newBatchFixtures(t *testing.T, agentCount int) (*BatchService, *memory.AgentRepository, []string) {
	t.Helper()
	ctx := context.Background()
	agents := memory.NewAgentRepository()
	batches := memory.NewBatchRepository()
	agentSvc := NewAgentService(AgentDependencies{
		AgentRepo:    agents,
		ApprovalRepo: memory.NewApprovalRepository(),
	})

	ids := make([]string, 0, agentCount)
	for i := 0; i < agentCount; i++ {
		agent, err := agentSvc.CreateAgent(ctx, "op", validAgentInput(i+1))
		if err != nil {
			t.Fatalf("CreateAgent: %v", err)
		}
		if err := agentSvc.ApplyStatus(ctx, agent.ID, domain.AgentStatusActive, nil); err != nil {
			t.Fatalf("ApplyStatus: %v", err)
		}
		ids = append(ids, agent.ID)
	}

	svc := NewBatchService(BatchDependencies{
		BatchRepo: batches,
		AgentRepo: agents,
	})
	return svc, agents, ids
}

func TestBatchLifecycle(t *testing.T) {
	svc, agents, ids := newBatchFixtures(t, 3)
	ctx := context.Background()
	scheduler := &recordingScheduler{}
	svc.SetScheduler(scheduler)

	// Snapshot covers the first two agents only; the third stays untouched.
	batch, err := svc.CreateBatch(ctx, BatchCreateInput{
		Name:      "Q2 exits",
		Type:      domain.BatchTypeTermination,
		AgentIDs:  ids[:2],
		CreatedBy: "System Administrator",
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if batch.Status != domain.BatchStatusPending {
		t.Fatalf("new batch status = %q, want pending", batch.Status)
	}
	if batch.AgentCount != 2 {
		t.Fatalf("agent count = %d, want 2", batch.AgentCount)
	}

	executed, err := svc.Execute(ctx, batch.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if executed.Status != domain.BatchStatusProcessing {
		t.Fatalf("executed batch status = %q, want processing", executed.Status)
	}
	if len(scheduler.scheduled) != 1 || scheduler.scheduled[0] != batch.ID {
		t.Fatalf("scheduled = %v, want [%s]", scheduler.scheduled, batch.ID)
	}

	if err := svc.CompleteBatch(ctx, batch.ID); err != nil {
		t.Fatalf("CompleteBatch: %v", err)
	}

	completed, err := svc.GetBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if completed.Status != domain.BatchStatusCompleted {
		t.Fatalf("final batch status = %q, want completed", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("completion must stamp CompletedAt")
	}

	for _, id := range ids[:2] {
		agent, err := agents.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if agent.Status != domain.AgentStatusTerminated {
			t.Fatalf("member agent status = %q, want terminated", agent.Status)
		}
	}
	bystander, err := agents.GetByID(ctx, ids[2])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if bystander.Status != domain.AgentStatusActive {
		t.Fatalf("non-member agent status = %q, want active", bystander.Status)
	}
}

func TestBatchTypeStatuses(t *testing.T) {
	cases := []struct {
		batchType domain.BatchType
		want      domain.AgentStatus
	}{
		{domain.BatchTypeTermination, domain.AgentStatusTerminated},
		{domain.BatchTypeSuspension, domain.AgentStatusSuspended},
		{domain.BatchTypeReinstatement, domain.AgentStatusActive},
		{domain.BatchTypeTransfer, domain.AgentStatusActive},
	}
	for _, tc := range cases {
		t.Run(string(tc.batchType), func(t *testing.T) {
			svc, agents, ids := newBatchFixtures(t, 1)
			ctx := context.Background()

			batch, err := svc.CreateBatch(ctx, BatchCreateInput{
				Name:      "bulk action",
				Type:      tc.batchType,
				AgentIDs:  ids,
				CreatedBy: "admin",
			})
			if err != nil {
				t.Fatalf("CreateBatch: %v", err)
			}
			if _, err := svc.Execute(ctx, batch.ID); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if err := svc.CompleteBatch(ctx, batch.ID); err != nil {
				t.Fatalf("CompleteBatch: %v", err)
			}

			agent, err := agents.GetByID(ctx, ids[0])
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if agent.Status != tc.want {
				t.Fatalf("agent status = %q, want %q", agent.Status, tc.want)
			}
		})
	}
}

func TestCreateBatchValidation(t *testing.T) {
	svc, _, _ := newBatchFixtures(t, 0)
	ctx := context.Background()

	_, err := svc.CreateBatch(ctx, BatchCreateInput{
		Name:     "  ",
		Type:     domain.BatchType("archive"),
		AgentIDs: nil,
	})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("error code = %q, want VALIDATION_FAILED", code)
	}
}

func TestExecuteNonPending(t *testing.T) {
	svc, _, ids := newBatchFixtures(t, 1)
	ctx := context.Background()

	batch, err := svc.CreateBatch(ctx, BatchCreateInput{
		Name:      "bulk action",
		Type:      domain.BatchTypeSuspension,
		AgentIDs:  ids,
		CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if _, err := svc.Execute(ctx, batch.ID); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	_, err = svc.Execute(ctx, batch.ID)
	if code := domainCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("error code = %q, want INVALID_STATE", code)
	}
}

func TestCompleteBatchFaultInjected(t *testing.T) {
	svc, agents, ids := newBatchFixtures(t, 1)
	ctx := context.Background()
	svc.SetFaultInjector(func(string) error { return errors.New("forced") })

	batch, err := svc.CreateBatch(ctx, BatchCreateInput{
		Name:      "bulk action",
		Type:      domain.BatchTypeTermination,
		AgentIDs:  ids,
		CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if _, err := svc.Execute(ctx, batch.ID); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := svc.CompleteBatch(ctx, batch.ID); err != nil {
		t.Fatalf("CompleteBatch: %v", err)
	}

	failed, err := svc.GetBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if failed.Status != domain.BatchStatusFailed {
		t.Fatalf("batch status = %q, want failed", failed.Status)
	}
	if failed.CompletedAt != nil {
		t.Fatalf("failed batch must not stamp CompletedAt")
	}

	agent, err := agents.GetByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if agent.Status != domain.AgentStatusActive {
		t.Fatalf("injected fault must skip agent writes, got %q", agent.Status)
	}
}

func TestCompleteBatchPartialFailure(t *testing.T) {
	svc, agents, ids := newBatchFixtures(t, 1)
	ctx := context.Background()

	batch, err := svc.CreateBatch(ctx, BatchCreateInput{
		Name:      "bulk action",
		Type:      domain.BatchTypeTermination,
		AgentIDs:  append([]string{"missing-agent"}, ids...),
		CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if _, err := svc.Execute(ctx, batch.ID); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := svc.CompleteBatch(ctx, batch.ID); err != nil {
		t.Fatalf("CompleteBatch: %v", err)
	}

	failed, err := svc.GetBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if failed.Status != domain.BatchStatusFailed {
		t.Fatalf("batch with an unknown member should fail, got %q", failed.Status)
	}

	// Remaining members are still attempted after the failure.
	agent, err := agents.GetByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if agent.Status != domain.AgentStatusTerminated {
		t.Fatalf("surviving member status = %q, want terminated", agent.Status)
	}
}

func TestCompleteBatchNotProcessing(t *testing.T) {
	svc, _, ids := newBatchFixtures(t, 1)
	ctx := context.Background()

	batch, err := svc.CreateBatch(ctx, BatchCreateInput{
		Name:      "bulk action",
		Type:      domain.BatchTypeTermination,
		AgentIDs:  ids,
		CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	err = svc.CompleteBatch(ctx, batch.ID)
	if code := domainCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("error code = %q, want INVALID_STATE", code)
	}
}

func TestCreateBatchSnapshotIsolated(t *testing.T) {
	svc, _, ids := newBatchFixtures(t, 1)
	ctx := context.Background()

	members := append([]string(nil), ids...)
	batch, err := svc.CreateBatch(ctx, BatchCreateInput{
		Name:      "bulk action",
		Type:      domain.BatchTypeSuspension,
		AgentIDs:  members,
		CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	members[0] = "mutated"
	stored, err := svc.GetBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if stored.AgentIDs[0] != ids[0] {
		t.Fatalf("batch snapshot must not alias the caller's slice")
	}
}
