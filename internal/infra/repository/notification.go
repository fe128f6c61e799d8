package repository

import (
	"context"
	"time"

	"parkvue/internal/infra"
	"parkvue/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusSent       = "sent"
	JobStatusFailed     = "failed"
	JobStatusDead       = "dead"
)

const (
	createJobSQL = `
		INSERT INTO notification_jobs (kind, topic, payload, run_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'queued', $5, $5)`

	// Due jobs plus jobs whose worker lease ran out. SKIP LOCKED lets several
	// workers claim disjoint batches.
	claimJobsSQL = `
		UPDATE notification_jobs
		SET status = 'processing', attempts = attempts + 1, updated_at = $1
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE (status IN ('queued', 'failed') AND run_at <= $1)
			   OR (status = 'processing' AND updated_at < $2)
			ORDER BY run_at, created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, topic, payload, attempts`

	markJobSentSQL = `
		UPDATE notification_jobs
		SET status = 'sent', last_error = NULL, updated_at = $2
		WHERE id = $1`

	markJobFailedSQL = `
		UPDATE notification_jobs
		SET status = CASE WHEN attempts >= $4 THEN 'dead' ELSE 'failed' END,
		    last_error = $2, run_at = $3, updated_at = $5
		WHERE id = $1`
)

// NotificationJob is an outbox row handed to the publisher.
type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
}

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, createJobSQL, kind, topic, payload, runAt, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// Claim moves up to limit due jobs to processing and bumps their attempt count.
func (r *NotificationRepository) Claim(ctx context.Context, limit int, lease time.Duration, now time.Time) ([]NotificationJob, error) {
	rows, err := r.db.Query(ctx, claimJobsSQL, now, now.Add(-lease), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (NotificationJob, error) {
		var j NotificationJob
		err := row.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts)
		return j, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read claimed notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error {
	if _, err := r.db.Exec(ctx, markJobSentSQL, id, now); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed schedules another try at retryAt, or parks the job as dead once
// it has used maxAttempts.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastErr string, retryAt time.Time, maxAttempts int, now time.Time) error {
	if _, err := r.db.Exec(ctx, markJobFailedSQL, id, lastErr, retryAt, maxAttempts, now); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
