package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atalhobr/atalho/internal/clients/auth"
	"github.com/atalhobr/atalho/internal/clients/geo"
	"github.com/atalhobr/atalho/internal/config"
	"github.com/atalhobr/atalho/internal/infrastructure/db"
	"github.com/atalhobr/atalho/internal/infrastructure/logger"
	"github.com/atalhobr/atalho/internal/infrastructure/telemetry"
	"github.com/atalhobr/atalho/internal/messaging/kafka"
	"github.com/atalhobr/atalho/internal/processing/domains"
	"github.com/atalhobr/atalho/internal/processing/links"
	"github.com/atalhobr/atalho/internal/processing/redirect"
	"github.com/atalhobr/atalho/internal/processing/visits"
	"github.com/atalhobr/atalho/internal/storage/postgres"
	"github.com/atalhobr/atalho/internal/storage/redis"
	"github.com/atalhobr/atalho/internal/transport/httpserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.App.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTel.Enabled {
		shutdownTracer, err := telemetry.InitTracer(cfg.OTel.Endpoint, cfg.App.Name, cfg.App.Version)
		if err != nil {
			logger.Fatal("failed to init tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Error("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	pg, err := db.ConnectPostgres(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	linkRepo := postgres.NewLinkRepository(pg.Pool)
	domainRepo := postgres.NewDomainRepository(pg.Pool)
	visitRepo := postgres.NewVisitRepository(pg.Pool)

	geoClient := geo.NewClient(cfg.Geo.BaseURL, cfg.Geo.Timeout)
	authClient := auth.NewClient(cfg.Auth.BaseURL, cfg.Auth.Timeout)

	var publisher httpserver.VisitPublisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("kafka writer close failed", zap.Error(err))
			}
		}()
		publisher = kafkaPublisher
		logger.Info("visit event publishing enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	pipeline := redirect.NewPipeline(domainRepo, linkRepo, visitRepo, geoClient, cfg.Geo.Timeout)
	linkService := links.NewService(linkRepo)
	domainService := domains.NewService(domainRepo)
	visitService := visits.NewService(visitRepo)

	limiter := redis.NewFixedWindowLimiter(redisClient, cfg.Security.WriteRatePerMinute)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Redirect:       httpserver.NewRedirectHandler(pipeline, cfg.Redirect.Status, publisher),
		Links:          httpserver.NewLinksHandler(linkService),
		Domains:        httpserver.NewDomainsHandler(domainService),
		Visits:         httpserver.NewVisitsHandler(visitService, linkService),
		Health:         httpserver.NewHealthHandler(pg.Pool, cfg.App.Version),
		Introspector:   authClient,
		Limiter:        limiter,
		AllowedOrigins: cfg.Security.AllowedOrigins,
		TracingEnabled: cfg.OTel.Enabled,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
			zap.Int("redirect_status", cfg.Redirect.Status),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Fatal("server failed", zap.Error(err))
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
