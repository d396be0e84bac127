package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/repair-service/internal/api/http"
	"github.com/spec-kit/repair-service/internal/api/http/handlers"
	"github.com/spec-kit/repair-service/internal/auth"
	"github.com/spec-kit/repair-service/internal/config"
	"github.com/spec-kit/repair-service/internal/events"
	"github.com/spec-kit/repair-service/internal/observability"
	"github.com/spec-kit/repair-service/internal/persistence"
	"github.com/spec-kit/repair-service/internal/ratelimit"
	"github.com/spec-kit/repair-service/internal/repository"
	"github.com/spec-kit/repair-service/internal/service"
	"github.com/spec-kit/repair-service/internal/sms"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	workspaceRepo := repository.NewWorkspaceRepository(pool)
	memberRepo := repository.NewWorkspaceMemberRepository(pool)
	repairRepo := repository.NewRepairRepository(pool)
	activityRepo := repository.NewRepairActivityRepository(pool)

	dispatcher := events.NewDetachedDispatcher(logger)
	smsSender := sms.NewBeemClient(cfg.SMS)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	workspaceService := service.NewWorkspaceService(cfg.Auth, service.WorkspaceDependencies{
		UserRepo:      userRepo,
		WorkspaceRepo: workspaceRepo,
		MemberRepo:    memberRepo,
	})
	repairService := service.NewRepairService(service.RepairDependencies{
		RepairRepo:   repairRepo,
		ActivityRepo: activityRepo,
		Dispatcher:   dispatcher,
		Sender:       smsSender,
	})
	notificationService := service.NewNotificationService(dispatcher, smsSender, logger)
	notificationService.RegisterHandlers()

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, logger)
	workspaceMiddleware := auth.NewWorkspaceMiddleware(workspaceRepo, memberRepo, logger)
	limiter := ratelimit.NewLimiter(redis.Client)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics,
		time.Duration(cfg.App.RequestTimeoutSeconds)*time.Second, cfg.App.CORSAllowedOrigins)

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService, workspaceService, limiter, cfg.RateLimit, logger)
	adminHandler := handlers.NewAdminHandler(authService, workspaceService)
	membersHandler := handlers.NewMembersHandler(workspaceService)
	repairsHandler := handlers.NewRepairsHandler(repairService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:              healthHandler,
		Auth:                authHandler,
		Admin:               adminHandler,
		Members:             membersHandler,
		Repairs:             repairsHandler,
		AuthMiddleware:      authMiddleware,
		WorkspaceMiddleware: workspaceMiddleware,
		BootstrapToken:      cfg.Auth.BootstrapToken,
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
