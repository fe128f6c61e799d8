package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parkvue/internal/infra/repository"
	"parkvue/internal/pkg/clock"

	"github.com/google/uuid"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

type JobStore interface {
	Claim(ctx context.Context, limit int, lease time.Duration, now time.Time) ([]repository.NotificationJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastErr string, retryAt time.Time, maxAttempts int, now time.Time) error
}

// Worker relays notification jobs written by the use cases to Kafka.
type Worker struct {
	Store       JobStore
	Producer    Producer
	Clock       clock.Clock
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
	Lease       time.Duration
	TopicPrefix string
	Backoff     []time.Duration
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil || w.Clock == nil {
		return ErrWorkerNotConfigured
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.ProcessOnce(ctx); err != nil {
				// the store is unreachable; try again next tick
				slog.Error("outbox batch failed", slog.String("error", err.Error()))
			}
		}
	}
}

// ProcessOnce relays one batch and reports how many jobs were handled.
func (w *Worker) ProcessOnce(ctx context.Context) (int, error) {
	jobs, err := w.Store.Claim(ctx, w.batchSize(), w.lease(), w.Clock.Now())
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, job := range jobs {
		if err := w.publish(ctx, job); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// publish only returns an error when the job state could not be recorded.
func (w *Worker) publish(ctx context.Context, job repository.NotificationJob) error {
	headers := map[string]string{
		"content-type": "application/json",
		"job-kind":     job.Kind,
	}
	pubErr := w.Producer.Publish(ctx, w.topicFor(job.Topic), job.ID.String(), job.Payload, headers)
	now := w.Clock.Now()
	if pubErr == nil {
		return w.Store.MarkSent(ctx, job.ID, now)
	}

	slog.Warn("outbox publish failed",
		slog.String("job_id", job.ID.String()),
		slog.String("topic", job.Topic),
		slog.Int("attempts", job.Attempts),
		slog.String("error", pubErr.Error()),
	)
	if job.Attempts >= w.maxAttempts() {
		slog.Error("outbox job gave up", slog.String("job_id", job.ID.String()))
	}
	return w.Store.MarkFailed(ctx, job.ID, pubErr.Error(), w.nextRetry(now, job.Attempts), w.maxAttempts(), now)
}

func (w *Worker) topicFor(topic string) string {
	if w.TopicPrefix == "" {
		return topic
	}
	return w.TopicPrefix + "." + topic
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return w.Interval
}

func (w *Worker) batchSize() int {
	if w.BatchSize <= 0 {
		return 50
	}
	return w.BatchSize
}

func (w *Worker) maxAttempts() int {
	if w.MaxAttempts <= 0 {
		return 10
	}
	return w.MaxAttempts
}

func (w *Worker) lease() time.Duration {
	if w.Lease <= 0 {
		return 30 * time.Second
	}
	return w.Lease
}

// attempts counts the try that just failed, so the first retry uses Backoff[0].
func (w *Worker) nextRetry(now time.Time, attempts int) time.Time {
	idx := attempts - 1
	if idx < 0 {
		idx = 0
	}
	if idx < len(w.Backoff) {
		return now.Add(w.Backoff[idx])
	}
	if len(w.Backoff) > 0 {
		return now.Add(w.Backoff[len(w.Backoff)-1])
	}
	return now.Add(5 * time.Second)
}
