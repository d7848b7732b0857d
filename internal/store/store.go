package store

import (
	"context"
	"errors"
	"time"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
)

var ErrNotFound = errors.New("not found")

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context) ([]domain.Notification, error)

	// MarkSending moves the notification into SENDING and clears any
	// previous error message, so concurrent readers observe the
	// in-flight state.
	MarkSending(ctx context.Context, id string) error

	// SetTotalRecipients fixes the recipient count for the current
	// dispatch attempt.
	SetTotalRecipients(ctx context.Context, id string, total int) error

	// MarkFailed records a top-level dispatch failure.
	MarkFailed(ctx context.Context, id, errorMessage string) error

	// Finish overwrites the counters with the current attempt's totals
	// and sets the terminal status and sent_at.
	Finish(ctx context.Context, id string, sent, failed int, status domain.NotificationStatus, sentAt time.Time) error
}

type NotificationLogStore interface {
	Create(ctx context.Context, l *domain.NotificationLog) error
	ListByNotification(ctx context.Context, notificationID string) ([]domain.NotificationLog, error)
}

type MemberStore interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)

	AllActive(ctx context.Context) ([]domain.Member, error)
	ActiveByMinistry(ctx context.Context, ministryID string) ([]domain.Member, error)
	ActiveByCommunity(ctx context.Context, communityID string) ([]domain.Member, error)
}

type MinistryStore interface {
	Create(ctx context.Context, m *domain.Ministry) error
	List(ctx context.Context) ([]domain.Ministry, error)
}

type CommunityStore interface {
	Create(ctx context.Context, c *domain.Community) error
	List(ctx context.Context) ([]domain.Community, error)
}

type TitheStore interface {
	CreatePayment(ctx context.Context, p *domain.TithePayment) error
	GetPayment(ctx context.Context, id string) (*domain.TithePayment, error)

	// LastReceiptNumber returns the highest receipt number issued in
	// the given window, or "" when none exists.
	LastReceiptNumber(ctx context.Context, from, to time.Time) (string, error)

	// SetSMSResult records the outcome of the confirmation SMS on the
	// payment row.
	SetSMSResult(ctx context.Context, id string, sent bool, messageID, smsError string, at time.Time) error
}
