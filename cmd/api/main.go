package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/agent-onboarding/internal/api/http"
	"github.com/spec-kit/agent-onboarding/internal/api/http/handlers"
	"github.com/spec-kit/agent-onboarding/internal/auth"
	"github.com/spec-kit/agent-onboarding/internal/config"
	"github.com/spec-kit/agent-onboarding/internal/events"
	"github.com/spec-kit/agent-onboarding/internal/observability"
	"github.com/spec-kit/agent-onboarding/internal/persistence"
	"github.com/spec-kit/agent-onboarding/internal/repository"
	"github.com/spec-kit/agent-onboarding/internal/repository/memory"
	"github.com/spec-kit/agent-onboarding/internal/service"
	"github.com/spec-kit/agent-onboarding/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		agentRepo    repository.AgentRepository
		approvalRepo repository.ApprovalRepository
		batchRepo    repository.BatchRepository
		userRepo     repository.UserRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		agentRepo = repository.NewAgentRepository(pool)
		approvalRepo = repository.NewApprovalRepository(pool)
		batchRepo = repository.NewBatchRepository(pool)
		userRepo = repository.NewUserRepository(pool)
	} else {
		logger.Warn("running with in-memory repositories; data is not persisted")
		agentRepo = memory.NewAgentRepository()
		approvalRepo = memory.NewApprovalRepository()
		batchRepo = memory.NewBatchRepository()
		userRepo = memory.NewUserRepository()
	}

	if cfg.Postgres.SeedUsers {
		if err := persistence.SeedUsers(ctx, userRepo, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed users", zap.Error(err))
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLog(dispatcher, logger)

	agentService := service.NewAgentService(service.AgentDependencies{
		AgentRepo:    agentRepo,
		ApprovalRepo: approvalRepo,
		Dispatcher:   dispatcher,
	})
	approvalService := service.NewApprovalService(service.ApprovalDependencies{
		ApprovalRepo: approvalRepo,
		AgentRepo:    agentRepo,
		Dispatcher:   dispatcher,
	})
	batchService := service.NewBatchService(service.BatchDependencies{
		BatchRepo:  batchRepo,
		AgentRepo:  agentRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authService := service.NewAuthService(cfg.Auth, userRepo)
	statsService := service.NewStatsService(agentRepo, approvalRepo, batchRepo, redis.Client, logger)

	batchWorker := worker.NewBatchWorker(batchService, cfg.Batch.CompletionDelay(), cfg.Batch.QueueSize, logger)
	batchService.SetScheduler(batchWorker)
	batchWorker.Start(ctx)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Agents:         handlers.NewAgentsHandler(agentService),
		Approvals:      handlers.NewApprovalsHandler(approvalService),
		Batches:        handlers.NewBatchesHandler(batchService),
		Dashboard:      handlers.NewDashboardHandler(statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
