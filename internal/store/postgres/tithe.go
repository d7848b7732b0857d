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

type TitheStore struct {
	db *DB
}

func NewTitheStore(db *DB) *TitheStore {
	return &TitheStore{db: db}
}

func (s *TitheStore) CreatePayment(ctx context.Context, p *domain.TithePayment) error {
	query := `
		INSERT INTO tithe_payments (id, member_id, contact_number, amount, method, receipt_number, paid_at, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		p.ID,
		p.MemberID,
		p.ContactNumber,
		p.Amount,
		string(p.Method),
		p.ReceiptNumber,
		p.PaidAt,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tithe payment: %w", err)
	}

	return nil
}

func (s *TitheStore) GetPayment(ctx context.Context, id string) (*domain.TithePayment, error) {
	query := `
		SELECT id, member_id, COALESCE(contact_number, ''), amount::text, method, receipt_number,
		       sms_sent, sms_sent_at, COALESCE(sms_message_id, ''), COALESCE(last_sms_error, ''),
		       paid_at, created_at
		FROM tithe_payments
		WHERE id = $1
	`

	var p domain.TithePayment
	err := s.db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.MemberID, &p.ContactNumber, &p.Amount, &p.Method, &p.ReceiptNumber,
		&p.SMSSent, &p.SMSSentAt, &p.SMSMessageID, &p.LastSMSError,
		&p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tithe payment: %w", err)
	}

	return &p, nil
}

func (s *TitheStore) LastReceiptNumber(ctx context.Context, from, to time.Time) (string, error) {
	query := `
		SELECT receipt_number
		FROM tithe_payments
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY receipt_number DESC
		LIMIT 1
	`

	var receipt string
	err := s.db.Pool.QueryRow(ctx, query, from, to).Scan(&receipt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get last receipt number: %w", err)
	}

	return receipt, nil
}

func (s *TitheStore) SetSMSResult(ctx context.Context, id string, sent bool, messageID, smsError string, at time.Time) error {
	query := `
		UPDATE tithe_payments
		SET sms_sent = $2, sms_sent_at = $3, sms_message_id = NULLIF($4, ''), last_sms_error = NULLIF($5, '')
		WHERE id = $1
	`

	tag, err := s.db.Pool.Exec(ctx, query, id, sent, at, messageID, smsError)
	if err != nil {
		return fmt.Errorf("failed to update tithe sms result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
