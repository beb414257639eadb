package service

import (
	"context"
	"testing"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/repository/memory"
)

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	agents := memory.NewAgentRepository()
	approvals := memory.NewApprovalRepository()
	batches := memory.NewBatchRepository()

	agentSvc := NewAgentService(AgentDependencies{
		AgentRepo:    agents,
		ApprovalRepo: approvals,
	})
	for i := 1; i <= 3; i++ {
		if _, err := agentSvc.CreateAgent(ctx, "op", validAgentInput(i)); err != nil {
			t.Fatalf("CreateAgent: %v", err)
		}
	}

	batchSvc := NewBatchService(BatchDependencies{BatchRepo: batches, AgentRepo: agents})
	if _, err := batchSvc.CreateBatch(ctx, BatchCreateInput{
		Name:      "bulk action",
		Type:      domain.BatchTypeSuspension,
		AgentIDs:  []string{"a"},
		CreatedBy: "admin",
	}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	stats, err := NewStatsService(agents, approvals, batches, nil, nil).GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalAgents != 3 {
		t.Fatalf("total agents = %d, want 3", stats.TotalAgents)
	}
	if stats.AgentsByStatus[domain.AgentStatusPending] != 3 {
		t.Fatalf("pending agents = %d, want 3", stats.AgentsByStatus[domain.AgentStatusPending])
	}
	if stats.PendingApprovals != 3 {
		t.Fatalf("pending approvals = %d, want 3", stats.PendingApprovals)
	}
	if stats.BatchesByStatus[domain.BatchStatusPending] != 1 {
		t.Fatalf("pending batches = %d, want 1", stats.BatchesByStatus[domain.BatchStatusPending])
	}
	if stats.GeneratedAt.IsZero() {
		t.Fatalf("generated at must be stamped")
	}
}
