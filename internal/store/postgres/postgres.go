package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *DB) Migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS ministries (
			id         TEXT PRIMARY KEY,
			name       TEXT UNIQUE NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS communities (
			id         TEXT PRIMARY KEY,
			name       TEXT UNIQUE NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS members (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			code         TEXT,
			telephone    TEXT,
			active       BOOLEAN NOT NULL DEFAULT TRUE,
			ministry_id  TEXT REFERENCES ministries(id),
			community_id TEXT REFERENCES communities(id),
			created_at   TIMESTAMPTZ DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id               TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			message          TEXT NOT NULL,
			target_type      TEXT NOT NULL CHECK (target_type IN ('MEMBER', 'MINISTRY', 'COMMUNITY', 'ALL')),
			target_id        TEXT,
			send_sms         BOOLEAN NOT NULL DEFAULT TRUE,
			status           TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'SENDING', 'SENT', 'FAILED')),
			total_recipients INT NOT NULL DEFAULT 0,
			sms_sent_count   INT NOT NULL DEFAULT 0,
			sms_failed_count INT NOT NULL DEFAULT 0,
			error_message    TEXT,
			created_by       TEXT,
			created_at       TIMESTAMPTZ DEFAULT NOW(),
			sent_at          TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS notification_logs (
			id              TEXT PRIMARY KEY,
			notification_id TEXT NOT NULL REFERENCES notifications(id),
			member_id       TEXT NOT NULL REFERENCES members(id),
			phone_number    TEXT NOT NULL,
			status          TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'SENT', 'FAILED')),
			message_id      TEXT,
			cost            TEXT,
			error_message   TEXT,
			created_at      TIMESTAMPTZ DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS tithe_payments (
			id             TEXT PRIMARY KEY,
			member_id      TEXT NOT NULL REFERENCES members(id),
			contact_number TEXT,
			amount         NUMERIC(10,2) NOT NULL,
			method         TEXT NOT NULL DEFAULT 'cash' CHECK (method IN ('cash', 'bank')),
			receipt_number TEXT UNIQUE NOT NULL,
			sms_sent       BOOLEAN NOT NULL DEFAULT FALSE,
			sms_sent_at    TIMESTAMPTZ,
			sms_message_id TEXT,
			last_sms_error TEXT,
			paid_at        TIMESTAMPTZ NOT NULL,
			created_at     TIMESTAMPTZ DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_members_ministry_id ON members(ministry_id);
		CREATE INDEX IF NOT EXISTS idx_members_community_id ON members(community_id);
		CREATE INDEX IF NOT EXISTS idx_members_active ON members(active);
		CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);
		CREATE INDEX IF NOT EXISTS idx_notification_logs_notification_id ON notification_logs(notification_id);
		CREATE INDEX IF NOT EXISTS idx_tithe_payments_member_id ON tithe_payments(member_id);
		CREATE INDEX IF NOT EXISTS idx_tithe_payments_created_at ON tithe_payments(created_at);
	`

	_, err := db.Pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
