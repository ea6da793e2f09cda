package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/poseidon-api/internal/api/dto"
	httptransport "github.com/spec-kit/poseidon-api/internal/api/http"
	"github.com/spec-kit/poseidon-api/internal/api/http/handlers"
	"github.com/spec-kit/poseidon-api/internal/auth"
	"github.com/spec-kit/poseidon-api/internal/config"
	"github.com/spec-kit/poseidon-api/internal/domain"
	"github.com/spec-kit/poseidon-api/internal/events"
	"github.com/spec-kit/poseidon-api/internal/observability"
	"github.com/spec-kit/poseidon-api/internal/persistence"
	"github.com/spec-kit/poseidon-api/internal/repository"
	"github.com/spec-kit/poseidon-api/internal/service"
	"github.com/spec-kit/poseidon-api/internal/worker"
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	pool := pg.PoolHandle()
	identityRepo := repository.NewIdentityRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	authService := service.NewAuthService(tokens, identityRepo, dispatcher, cfg.Auth.BcryptCost, logger)

	if cfg.Auth.BootstrapEnabled() {
		if _, err := authService.EnsureIdentity(ctx, cfg.Auth.BootstrapName, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
			logger.Fatal("failed to bootstrap identity", zap.Error(err))
		}
	}

	entities := newEntityStores(pool, redis, cfg.Cache, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Login:  handlers.NewLoginHandler(authService),
		Entities: []httptransport.EntityRoutes{
			handlers.NewCRUDHandler[domain.BidList, dto.BidListDTO]("bidlists", entities.bidLists, dto.ToBidListDTO, dispatcher, logger),
			handlers.NewCRUDHandler[domain.Trade, dto.TradeDTO]("trades", entities.trades, dto.ToTradeDTO, dispatcher, logger),
			handlers.NewCRUDHandler[domain.CurvePoint, dto.CurvePointDTO]("curvepoints", entities.curvePoints, dto.ToCurvePointDTO, dispatcher, logger),
			handlers.NewCRUDHandler[domain.Rating, dto.RatingDTO]("ratings", entities.ratings, dto.ToRatingDTO, dispatcher, logger),
			handlers.NewCRUDHandler[domain.RuleName, dto.RuleNameDTO]("rulenames", entities.ruleNames, dto.ToRuleNameDTO, dispatcher, logger),
		},
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
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
