package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agriplan/internal/model"
)

type NotificationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewNotificationRepository(db *pgxpool.Pool, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, logger: logger}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) (int, error) {
	query := `
        INSERT INTO notifications (record_type, record_id, plan_id, action, status, message)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		n.RecordType, n.RecordID, n.PlanID, n.Action, n.Status, n.Message,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert notification",
			zap.Error(err),
			zap.String("record_type", n.RecordType),
			zap.Int("record_id", n.RecordID),
		)
		return 0, err
	}
	r.logger.Debug("Notification inserted",
		zap.Int("notification_id", n.ID),
		zap.String("action", n.Action),
	)
	return n.ID, nil
}

func (r *NotificationRepository) ListRecent(ctx context.Context, limit int) ([]model.Notification, error) {
	query := `
        SELECT id, record_type, record_id, plan_id, action, status, message, created_at
        FROM notifications
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to query notifications", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(
			&n.ID, &n.RecordType, &n.RecordID, &n.PlanID, &n.Action, &n.Status, &n.Message, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
