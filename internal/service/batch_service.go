package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/events"
	"github.com/spec-kit/agent-onboarding/internal/repository"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

// CompletionScheduler defers batch finalization. Execute returns to the
// caller as soon as the batch is processing; the scheduler later drives
// CompleteBatch.
type CompletionScheduler interface {
	Schedule(batchID string)
}

// FaultInjector lets tests and operational tooling force a processing batch
// onto the failed path. A non-nil return marks the batch failed.
type FaultInjector func(batchID string) error

// BatchService owns bulk status-change jobs.
type BatchService struct {
	batches    repository.BatchRepository
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	scheduler  CompletionScheduler
	fault      FaultInjector
}

// BatchDependencies bundles requirements for the batch service.
type BatchDependencies struct {
	BatchRepo  repository.BatchRepository
	AgentRepo  repository.AgentRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// BatchCreateInput describes a new batch job.
type BatchCreateInput struct {
	Name      string
	Type      domain.BatchType
	AgentIDs  []string
	CreatedBy string
}

// NewBatchService constructs the service.
func NewBatchService(deps BatchDependencies) *BatchService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{
		batches:    deps.BatchRepo,
		agents:     deps.AgentRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// SetScheduler wires the deferred completion scheduler. Without one, Execute
// leaves batches in processing until CompleteBatch is called explicitly.
func (s *BatchService) SetScheduler(scheduler CompletionScheduler) {
	s.scheduler = scheduler
}

// SetFaultInjector installs a hook forcing batches onto the failed path.
func (s *BatchService) SetFaultInjector(fault FaultInjector) {
	s.fault = fault
}

// CreateBatch captures an immutable snapshot of the targeted agents under a
// named bulk action. Execution never re-resolves the membership.
func (s *BatchService) CreateBatch(ctx context.Context, input BatchCreateInput) (*domain.BatchJob, error) {
	issues := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		issues["name"] = "required"
	}
	if !domain.ValidBatchType(input.Type) {
		issues["type"] = "must be termination, suspension, reinstatement or transfer"
	}
	if len(input.AgentIDs) == 0 {
		issues["agent_ids"] = "at least one agent required"
	}
	if len(issues) > 0 {
		return nil, apperrors.NewValidationError("invalid batch job", issues)
	}

	batch := &domain.BatchJob{
		Name:       strings.TrimSpace(input.Name),
		Type:       input.Type,
		AgentIDs:   append([]string(nil), input.AgentIDs...),
		AgentCount: len(input.AgentIDs),
		Status:     domain.BatchStatusPending,
		CreatedBy:  input.CreatedBy,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GetBatch fetches a single batch job.
func (s *BatchService) GetBatch(ctx context.Context, id string) (*domain.BatchJob, error) {
	return s.batches.GetByID(ctx, id)
}

// ListBatches returns all batch jobs in insertion order.
func (s *BatchService) ListBatches(ctx context.Context) ([]domain.BatchJob, error) {
	return s.batches.List(ctx)
}

// Execute moves a pending batch to processing and schedules its completion.
// The caller gets control back immediately; the type-to-status fan-out runs
// when the scheduler fires. Once processing, a batch cannot be cancelled.
func (s *BatchService) Execute(ctx context.Context, id string) (*domain.BatchJob, error) {
	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch.Status != domain.BatchStatusPending {
		return nil, apperrors.NewInvalidState("batch is not pending")
	}

	batch.Status = domain.BatchStatusProcessing
	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}

	if s.scheduler != nil {
		s.scheduler.Schedule(batch.ID)
	}
	return batch, nil
}

// CompleteBatch finalizes a processing batch: it applies the batch type's
// agent status to every snapshot member, attempting all writes even after a
// failure, then marks the batch completed, or failed when any write (or an
// injected fault) went wrong.
func (s *BatchService) CompleteBatch(ctx context.Context, id string) error {
	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if batch.Status != domain.BatchStatusProcessing {
		return apperrors.NewInvalidState("batch is not processing")
	}

	failed := false
	if s.fault != nil {
		if err := s.fault(batch.ID); err != nil {
			s.logger.Warn("batch fault injected", zap.String("batch_id", batch.ID), zap.Error(err))
			failed = true
		}
	}

	if !failed {
		target := domain.BatchAgentStatus[batch.Type]
		for _, agentID := range batch.AgentIDs {
			if err := s.applyAgentStatus(ctx, agentID, target); err != nil {
				s.logger.Warn("batch agent update failed",
					zap.String("batch_id", batch.ID),
					zap.String("agent_id", agentID),
					zap.Error(err),
				)
				failed = true
			}
		}
	}

	now := time.Now()
	if failed {
		batch.Status = domain.BatchStatusFailed
	} else {
		batch.Status = domain.BatchStatusCompleted
		batch.CompletedAt = &now
	}
	if err := s.batches.Update(ctx, batch); err != nil {
		return err
	}

	s.publish(ctx, events.BatchCompletedPayload{
		BatchID:    batch.ID,
		Type:       batch.Type,
		Status:     batch.Status,
		AgentCount: batch.AgentCount,
	})
	return nil
}

func (s *BatchService) applyAgentStatus(ctx context.Context, agentID string, status domain.AgentStatus) error {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return err
	}
	if agent.Status == status {
		return nil
	}
	agent.Status = status
	return s.agents.Update(ctx, agent)
}

func (s *BatchService) publish(ctx context.Context, payload events.BatchCompletedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBatchCompleted,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
