package repository

import (
	"context"
	"time"

	"chargeshare/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at, created_at)
		VALUES ($1, $2, $3, $4, 'queued', $5, now())`,
		uuid.New(), kind, topic, payload, runAt,
	)
	if err != nil {
		return classifyWriteErr("failed to create notification job", err)
	}
	return nil
}
