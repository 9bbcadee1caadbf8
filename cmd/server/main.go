// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unclebandit/campaign-builder/internal/api"
	"github.com/unclebandit/campaign-builder/internal/config"
	"github.com/unclebandit/campaign-builder/internal/db"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/queue"
	"github.com/unclebandit/campaign-builder/internal/repository"
	"github.com/unclebandit/campaign-builder/internal/service"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger("campaign-builder")

	// Contact directory: Postgres when configured, demo data otherwise
	var conn *sql.DB
	var directory repository.ContactDirectory
	if cfg.DatabaseURL != "" {
		var err error
		conn, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connection failed")
		}
		defer conn.Close()
		directory = &repository.ContactRepository{DB: conn}
		logger.Info().Msg("✅ contact directory backed by PostgreSQL")
	} else {
		directory = repository.NewDemoDirectory()
		logger.Warn().Msg("⚠️ DATABASE_URL not set, using demo contact directory")
	}

	// Handoff queue: RabbitMQ when configured, in-process worker otherwise
	var q queue.Queue
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.DialAMQP(cfg.AMQPURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("rabbitmq connection failed")
		}
		defer amqpQueue.Close()
		q = amqpQueue
		logger.Info().Msg("✅ handoffs published to RabbitMQ")
	} else {
		memQueue := queue.NewInMemoryQueue(logger)
		var deliveries service.DeliveryRecorder
		if conn != nil {
			deliveries = &repository.DeliveryRepository{DB: conn}
		}
		worker := service.NewWorker(directory, deliveries, service.MockSender, logger)
		worker.BrandName = cfg.BrandName
		err := queue.StartHandoffSubscriber(memQueue, logger, func(ev model.HandoffEvent) error {
			_, err := worker.Process(context.Background(), ev)
			return err
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to start handoff subscriber")
		}
		q = memQueue
		logger.Warn().Msg("⚠️ AMQP_URL not set, handoffs processed in process")
	}

	svc := service.NewDraftService(
		repository.NewInMemoryDraftRepository(),
		directory,
		service.NewStubGenerator(cfg.GenerationLatency),
		q,
		logger,
	)
	svc.GenerationTimeout = cfg.GenerationTimeout

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(logger, svc, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("🚀 server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
