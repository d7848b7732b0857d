package postgres

import (
	"context"
	"fmt"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
)

type NotificationLogStore struct {
	db *DB
}

func NewNotificationLogStore(db *DB) *NotificationLogStore {
	return &NotificationLogStore{db: db}
}

func (s *NotificationLogStore) Create(ctx context.Context, l *domain.NotificationLog) error {
	query := `
		INSERT INTO notification_logs (id, notification_id, member_id, phone_number, status, message_id, cost, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		l.ID,
		l.NotificationID,
		l.MemberID,
		l.PhoneNumber,
		string(l.Status),
		l.MessageID,
		l.Cost,
		l.ErrorMessage,
		l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification log: %w", err)
	}

	return nil
}

func (s *NotificationLogStore) ListByNotification(ctx context.Context, notificationID string) ([]domain.NotificationLog, error) {
	query := `
		SELECT id, notification_id, member_id, phone_number, status,
		       COALESCE(message_id, ''), COALESCE(cost, ''), COALESCE(error_message, ''), created_at
		FROM notification_logs
		WHERE notification_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Pool.Query(ctx, query, notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.NotificationLog
	for rows.Next() {
		var l domain.NotificationLog
		if err := rows.Scan(
			&l.ID, &l.NotificationID, &l.MemberID, &l.PhoneNumber, &l.Status,
			&l.MessageID, &l.Cost, &l.ErrorMessage, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
