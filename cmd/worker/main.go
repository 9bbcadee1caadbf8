package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/unclebandit/campaign-builder/internal/config"
	"github.com/unclebandit/campaign-builder/internal/db"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/queue"
	"github.com/unclebandit/campaign-builder/internal/repository"
	"github.com/unclebandit/campaign-builder/internal/service"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger("campaign-worker")

	if cfg.AMQPURL == "" || cfg.DatabaseURL == "" {
		logger.Fatal().Msg("worker needs both AMQP_URL and DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer conn.Close()

	q, err := queue.DialAMQP(cfg.AMQPURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("rabbitmq connection failed")
	}
	defer q.Close()

	deliveries := &repository.DeliveryRepository{DB: conn}
	worker := service.NewWorker(&repository.ContactRepository{DB: conn}, deliveries, service.MockSender, logger)
	worker.BrandName = cfg.BrandName

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = queue.StartHandoffSubscriber(q, logger, func(ev model.HandoffEvent) error {
		if _, err := worker.Process(ctx, ev); err != nil {
			return err
		}
		stats, err := deliveries.CountByStatus(ctx, ev.Data.ID)
		if err != nil {
			logger.Warn().Err(err).Str("draft_id", ev.Data.ID).Msg("failed to read delivery stats")
			return nil
		}
		logger.Info().Str("draft_id", ev.Data.ID).Interface("stats", stats).Msg("delivery stats")
		return nil
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register consumer")
	}

	logger.Info().Str("queue", queue.HandoffTopic).Msg("worker running, waiting for handoffs...")
	<-ctx.Done()
	logger.Info().Msg("worker stopped")
}
