package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/pytracker/tracker-service/internal/api/http"
	"github.com/pytracker/tracker-service/internal/api/http/handlers"
	"github.com/pytracker/tracker-service/internal/audit"
	"github.com/pytracker/tracker-service/internal/auth"
	"github.com/pytracker/tracker-service/internal/config"
	"github.com/pytracker/tracker-service/internal/events"
	"github.com/pytracker/tracker-service/internal/observability"
	"github.com/pytracker/tracker-service/internal/persistence"
	"github.com/pytracker/tracker-service/internal/service"
	"github.com/pytracker/tracker-service/internal/store"
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

	if pg.Enabled() && cfg.Postgres.ApplySchema {
		if err := persistence.EnsureAuditSchema(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to apply audit schema", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	verifier := buildVerifier(cfg.Auth)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	users := store.NewUserDirectory()
	projects := store.NewProjectRegistry()
	tickets := store.NewTicketStore()

	seed := store.DefaultSeed()
	if cfg.Auth.Mode == config.AuthModeBcrypt {
		for i := range seed.Users {
			hash, err := verifier.Hash(cfg.Auth.SharedSecret)
			if err != nil {
				logger.Fatal("failed to hash seed credentials", zap.Error(err))
			}
			seed.Users[i].PasswordHash = hash
		}
	}

	dispatcher := events.NewDispatcher()

	tracker := service.NewTrackerService(service.Dependencies{
		Users:      users,
		Projects:   projects,
		Tickets:    tickets,
		Verifier:   verifier,
		Dispatcher: dispatcher,
		Latency:    cfg.Latency,
		Seed:       seed,
	})

	if cfg.Seed {
		if err := tracker.Reset(ctx); err != nil {
			logger.Fatal("failed to seed stores", zap.Error(err))
		}
		logger.Info("stores seeded",
			zap.Int("users", len(seed.Users)),
			zap.Int("projects", len(seed.Projects)),
			zap.Int("tickets", len(seed.Tickets)))
	}

	notifications := service.NewNotificationService(dispatcher, logger, redis, cfg.Redis)
	notifications.RegisterHandlers()

	archiver := audit.NewArchiver(pg.PoolHandle(), logger)
	archiver.RegisterHandlers(dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	routeCfg := httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(tracker, tokens),
		Users:    handlers.NewUsersHandler(tracker),
		Projects: handlers.NewProjectsHandler(tracker),
		Tickets:  handlers.NewTicketsHandler(tracker),
	}
	if cfg.App.Env == "development" {
		routeCfg.Admin = handlers.NewAdminHandler(tracker)
	}
	httptransport.RegisterRoutes(app, routeCfg)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func buildVerifier(cfg config.AuthConfig) auth.CredentialVerifier {
	if cfg.Mode == config.AuthModeBcrypt {
		return auth.NewBcryptVerifier(cfg.BcryptCost)
	}
	return auth.NewSharedSecretVerifier(cfg.SharedSecret)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
