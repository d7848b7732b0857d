package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
)

type NotificationStore struct {
	db *DB
}

func NewNotificationStore(db *DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, title, message, target_type, target_id, send_sms, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), $9)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		n.ID,
		n.Title,
		n.Message,
		string(n.TargetType),
		n.TargetID,
		n.SendSMS,
		string(n.Status),
		n.CreatedBy,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (s *NotificationStore) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	query := `
		SELECT id, title, message, target_type, COALESCE(target_id, ''), send_sms, status,
		       total_recipients, sms_sent_count, sms_failed_count,
		       COALESCE(error_message, ''), COALESCE(created_by, ''), created_at, sent_at
		FROM notifications
		WHERE id = $1
	`

	var n domain.Notification
	err := s.db.Pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Message, &n.TargetType, &n.TargetID, &n.SendSMS, &n.Status,
		&n.TotalRecipients, &n.SentCount, &n.FailedCount,
		&n.ErrorMessage, &n.CreatedBy, &n.CreatedAt, &n.SentAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &n, nil
}

func (s *NotificationStore) List(ctx context.Context) ([]domain.Notification, error) {
	query := `
		SELECT id, title, message, target_type, COALESCE(target_id, ''), send_sms, status,
		       total_recipients, sms_sent_count, sms_failed_count,
		       COALESCE(error_message, ''), COALESCE(created_by, ''), created_at, sent_at
		FROM notifications
		ORDER BY created_at DESC
	`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Message, &n.TargetType, &n.TargetID, &n.SendSMS, &n.Status,
			&n.TotalRecipients, &n.SentCount, &n.FailedCount,
			&n.ErrorMessage, &n.CreatedBy, &n.CreatedAt, &n.SentAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (s *NotificationStore) MarkSending(ctx context.Context, id string) error {
	query := `
		UPDATE notifications
		SET status = 'SENDING', error_message = NULL
		WHERE id = $1
	`
	return s.exec(ctx, query, id)
}

func (s *NotificationStore) SetTotalRecipients(ctx context.Context, id string, total int) error {
	query := `
		UPDATE notifications
		SET total_recipients = $2
		WHERE id = $1
	`
	return s.exec(ctx, query, id, total)
}

func (s *NotificationStore) MarkFailed(ctx context.Context, id, errorMessage string) error {
	query := `
		UPDATE notifications
		SET status = 'FAILED', error_message = $2
		WHERE id = $1
	`
	return s.exec(ctx, query, id, errorMessage)
}

func (s *NotificationStore) Finish(ctx context.Context, id string, sent, failed int, status domain.NotificationStatus, sentAt time.Time) error {
	query := `
		UPDATE notifications
		SET sms_sent_count = $2, sms_failed_count = $3, status = $4, sent_at = $5
		WHERE id = $1
	`
	return s.exec(ctx, query, id, sent, failed, string(status), sentAt)
}

func (s *NotificationStore) exec(ctx context.Context, query string, args ...any) error {
	tag, err := s.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
