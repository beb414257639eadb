package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// DashboardStats summarizes the onboarding pipeline for the dashboard.
type DashboardStats struct {
	TotalAgents      int                        `json:"total_agents"`
	AgentsByStatus   map[domain.AgentStatus]int `json:"agents_by_status"`
	PendingApprovals int                        `json:"pending_approvals"`
	BatchesByStatus  map[domain.BatchStatus]int `json:"batches_by_status"`
	GeneratedAt      time.Time                  `json:"generated_at"`
}

// StatsService aggregates dashboard counters, caching them in Redis.
type StatsService struct {
	agents    repository.AgentRepository
	approvals repository.ApprovalRepository
	batches   repository.BatchRepository
	cache     *redis.Client
	logger    *zap.Logger
}

// NewStatsService constructs the service. cache may be nil; stats are then
// computed on every call.
func NewStatsService(agents repository.AgentRepository, approvals repository.ApprovalRepository, batches repository.BatchRepository, cache *redis.Client, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		agents:    agents,
		approvals: approvals,
		batches:   batches,
		cache:     cache,
		logger:    logger,
	}
}

// GetStats returns dashboard counters, served from cache when fresh.
func (s *StatsService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	agentCounts, err := s.agents.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	approvalCounts, err := s.approvals.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	batchCounts, err := s.batches.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range agentCounts {
		total += count
	}

	stats := &DashboardStats{
		TotalAgents:      total,
		AgentsByStatus:   agentCounts,
		PendingApprovals: approvalCounts[domain.ApprovalStatusPending],
		BatchesByStatus:  batchCounts,
		GeneratedAt:      time.Now(),
	}
	s.toCache(ctx, stats)
	return stats, nil
}

func (s *StatsService) fromCache(ctx context.Context) *DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}
