// Package memory provides in-memory repository implementations. They back
// tests and DSN-less development runs with the same contracts as the Postgres
// repositories: List hands out snapshots and Update replaces whole records.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/repository"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

// AgentRepository is a mutex-guarded in-memory agent store.
type AgentRepository struct {
	mu       sync.RWMutex
	agents   []domain.Agent
	lastCode int
}

// NewAgentRepository creates an empty agent store.
func NewAgentRepository() *AgentRepository {
	return &AgentRepository{lastCode: 1233}
}

func (r *AgentRepository) Create(_ context.Context, agent *domain.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if agent.ID == "" {
		agent.ID = uuid.NewString()
	}
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now()
	}
	r.agents = append(r.agents, cloneAgent(*agent))
	return nil
}

func (r *AgentRepository) Update(_ context.Context, agent *domain.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.agents {
		if r.agents[i].ID == agent.ID {
			r.agents[i] = cloneAgent(*agent)
			return nil
		}
	}
	return apperrors.NewNotFound("agent", map[string]any{"id": agent.ID})
}

func (r *AgentRepository) GetByID(_ context.Context, id string) (*domain.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.agents {
		if r.agents[i].ID == id {
			agent := cloneAgent(r.agents[i])
			return &agent, nil
		}
	}
	return nil, apperrors.NewNotFound("agent", map[string]any{"id": id})
}

func (r *AgentRepository) List(_ context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]domain.Agent, 0, len(r.agents))
	for i := range r.agents {
		if filter.Status != nil && r.agents[i].Status != *filter.Status {
			continue
		}
		if filter.SearchTerm != nil && !agentMatches(&r.agents[i], *filter.SearchTerm) {
			continue
		}
		matched = append(matched, cloneAgent(r.agents[i]))
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []domain.Agent{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *AgentRepository) NextAgentCode(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCode++
	return fmt.Sprintf("AFLI%06d", r.lastCode), nil
}

func (r *AgentRepository) CountByStatus(_ context.Context) (map[domain.AgentStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[domain.AgentStatus]int)
	for i := range r.agents {
		counts[r.agents[i].Status]++
	}
	return counts, nil
}

func agentMatches(agent *domain.Agent, term string) bool {
	term = strings.ToLower(term)
	if term == "" {
		return true
	}
	for _, candidate := range []string{agent.FirstName, agent.LastName, agent.AgentCode, agent.Email} {
		if strings.Contains(strings.ToLower(candidate), term) {
			return true
		}
	}
	return false
}

func cloneAgent(agent domain.Agent) domain.Agent {
	if agent.Nominee != nil {
		nominee := *agent.Nominee
		agent.Nominee = &nominee
	}
	if agent.ExamDetails != nil {
		exam := *agent.ExamDetails
		if exam.Score != nil {
			score := *exam.Score
			exam.Score = &score
		}
		agent.ExamDetails = &exam
	}
	if agent.ApprovedAt != nil {
		approvedAt := *agent.ApprovedAt
		agent.ApprovedAt = &approvedAt
	}
	agent.Documents = append([]domain.Document(nil), agent.Documents...)
	return agent
}

// ApprovalRepository is a mutex-guarded in-memory approval request store.
type ApprovalRepository struct {
	mu       sync.RWMutex
	requests []domain.ApprovalRequest
}

// NewApprovalRepository creates an empty approval request store.
func NewApprovalRepository() *ApprovalRepository {
	return &ApprovalRepository{}
}

func (r *ApprovalRepository) Create(_ context.Context, request *domain.ApprovalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now()
	}
	r.requests = append(r.requests, cloneApproval(*request))
	return nil
}

func (r *ApprovalRepository) Update(_ context.Context, request *domain.ApprovalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == request.ID {
			r.requests[i] = cloneApproval(*request)
			return nil
		}
	}
	return apperrors.NewNotFound("approval request", map[string]any{"id": request.ID})
}

func (r *ApprovalRepository) GetByID(_ context.Context, id string) (*domain.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			request := cloneApproval(r.requests[i])
			return &request, nil
		}
	}
	return nil, apperrors.NewNotFound("approval request", map[string]any{"id": id})
}

func (r *ApprovalRepository) List(_ context.Context, filter repository.ApprovalFilter) ([]domain.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]domain.ApprovalRequest, 0, len(r.requests))
	for i := range r.requests {
		if filter.RequestType != nil && r.requests[i].RequestType != *filter.RequestType {
			continue
		}
		if filter.Status != nil && r.requests[i].Status != *filter.Status {
			continue
		}
		matched = append(matched, cloneApproval(r.requests[i]))
	}
	return matched, nil
}

func (r *ApprovalRepository) CountByStatus(_ context.Context) (map[domain.ApprovalStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[domain.ApprovalStatus]int)
	for i := range r.requests {
		counts[r.requests[i].Status]++
	}
	return counts, nil
}

func cloneApproval(request domain.ApprovalRequest) domain.ApprovalRequest {
	if request.ResolvedBy != nil {
		resolvedBy := *request.ResolvedBy
		request.ResolvedBy = &resolvedBy
	}
	if request.ResolvedAt != nil {
		resolvedAt := *request.ResolvedAt
		request.ResolvedAt = &resolvedAt
	}
	if request.Comments != nil {
		comments := *request.Comments
		request.Comments = &comments
	}
	return request
}

// BatchRepository is a mutex-guarded in-memory batch job store.
type BatchRepository struct {
	mu      sync.RWMutex
	batches []domain.BatchJob
}

// NewBatchRepository creates an empty batch job store.
func NewBatchRepository() *BatchRepository {
	return &BatchRepository{}
}

func (r *BatchRepository) Create(_ context.Context, batch *domain.BatchJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now()
	}
	r.batches = append(r.batches, cloneBatch(*batch))
	return nil
}

func (r *BatchRepository) Update(_ context.Context, batch *domain.BatchJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.batches {
		if r.batches[i].ID == batch.ID {
			r.batches[i] = cloneBatch(*batch)
			return nil
		}
	}
	return apperrors.NewNotFound("batch job", map[string]any{"id": batch.ID})
}

func (r *BatchRepository) GetByID(_ context.Context, id string) (*domain.BatchJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.batches {
		if r.batches[i].ID == id {
			batch := cloneBatch(r.batches[i])
			return &batch, nil
		}
	}
	return nil, apperrors.NewNotFound("batch job", map[string]any{"id": id})
}

func (r *BatchRepository) List(_ context.Context) ([]domain.BatchJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	batches := make([]domain.BatchJob, 0, len(r.batches))
	for i := range r.batches {
		batches = append(batches, cloneBatch(r.batches[i]))
	}
	return batches, nil
}

func (r *BatchRepository) CountByStatus(_ context.Context) (map[domain.BatchStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[domain.BatchStatus]int)
	for i := range r.batches {
		counts[r.batches[i].Status]++
	}
	return counts, nil
}

func cloneBatch(batch domain.BatchJob) domain.BatchJob {
	batch.AgentIDs = append([]string(nil), batch.AgentIDs...)
	if batch.CompletedAt != nil {
		completedAt := *batch.CompletedAt
		batch.CompletedAt = &completedAt
	}
	return batch
}

// UserRepository is a mutex-guarded in-memory operator account store.
type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserRepository creates an empty user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, apperrors.NewNotFound("user", nil)
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Username == username {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, apperrors.NewNotFound("user", nil)
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}
