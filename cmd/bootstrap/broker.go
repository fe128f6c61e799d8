package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parkvue/internal/infra/broker/kafka"
	"parkvue/internal/infra/outbox"
	"parkvue/internal/infra/repository"
	"parkvue/internal/pkg/clock"
	"parkvue/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// BrokerModule relays notification jobs to Kafka. Without KAFKA_BROKERS the
// jobs stay queued in Postgres.
var BrokerModule = fx.Module("broker",
	fx.Invoke(StartOutbox),
)

var outboxBackoff = []time.Duration{
	time.Second,
	5 * time.Second,
	30 * time.Second,
	2 * time.Minute,
	10 * time.Minute,
}

func StartOutbox(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, clk clock.Clock, logger *slog.Logger) error {
	if !cfg.Kafka.Enabled() {
		logger.Info("kafka brokers not configured; outbox relay disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return err
	}

	worker := &outbox.Worker{
		Store:       repository.NewNotificationRepository(pool),
		Producer:    producer,
		Clock:       clk,
		Interval:    cfg.Outbox.Interval,
		BatchSize:   cfg.Outbox.BatchSize,
		MaxAttempts: cfg.Outbox.MaxAttempts,
		Lease:       cfg.Outbox.Lease,
		TopicPrefix: cfg.Kafka.TopicPrefix,
		Backoff:     outboxBackoff,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("outbox relay stopped", "error", err)
				}
			}()
			logger.Info("outbox relay started", "brokers", cfg.Kafka.Brokers, "topic_prefix", cfg.Kafka.TopicPrefix)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return producer.Close()
		},
	})
	return nil
}
