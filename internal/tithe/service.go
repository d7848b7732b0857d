// Package tithe records tithe payments and sends the contributing
// member a confirmation SMS. The SMS goes out from an explicit call in
// the request handler, never from a persistence hook, so payments stay
// recordable when the gateway is down.
package tithe

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
	"github.com/spacecadet3008/Kristo-mfalme/internal/phone"
	"github.com/spacecadet3008/Kristo-mfalme/internal/sms"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
)

const receiptPrefix = "TITH"

type Service struct {
	tithes     store.TitheStore
	members    store.MemberStore
	provider   sms.Provider
	normalizer *phone.Normalizer
	sendSMS    bool
}

func NewService(tithes store.TitheStore, members store.MemberStore, provider sms.Provider, normalizer *phone.Normalizer, sendSMS bool) *Service {
	return &Service{
		tithes:     tithes,
		members:    members,
		provider:   provider,
		normalizer: normalizer,
		sendSMS:    sendSMS,
	}
}

type PaymentRequest struct {
	MemberID      string
	ContactNumber string
	Amount        string
	Method        domain.PaymentMethod
	PaidAt        time.Time
}

// RecordPayment persists the payment with a fresh receipt number and
// then attempts the confirmation SMS. An SMS failure is recorded on the
// payment row but never fails the recording itself.
func (s *Service) RecordPayment(ctx context.Context, req PaymentRequest) (*domain.TithePayment, error) {
	member, err := s.members.GetByID(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("lookup member: %w", err)
	}

	contact := req.ContactNumber
	if contact == "" {
		contact = member.Telephone
	}

	now := time.Now()
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}

	method := req.Method
	if method == "" {
		method = domain.PaymentMethodCash
	}

	receipt, err := s.nextReceiptNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	payment := &domain.TithePayment{
		ID:            uuid.New().String(),
		MemberID:      member.ID,
		ContactNumber: contact,
		Amount:        req.Amount,
		Method:        method,
		ReceiptNumber: receipt,
		PaidAt:        paidAt,
		CreatedAt:     now,
	}

	if err := s.tithes.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	if s.sendSMS && contact != "" {
		s.sendConfirmation(ctx, payment, member)
	}

	return payment, nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (*domain.TithePayment, error) {
	return s.tithes.GetPayment(ctx, id)
}

// nextReceiptNumber issues TITH-YYYYMMDD-NNNN, restarting the sequence
// each day.
func (s *Service) nextReceiptNumber(ctx context.Context, now time.Time) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	last, err := s.tithes.LastReceiptNumber(ctx, dayStart, dayEnd)
	if err != nil {
		return "", fmt.Errorf("next receipt number: %w", err)
	}

	next := 1
	if last != "" {
		parts := strings.Split(last, "-")
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			next = n + 1
		}
	}

	return fmt.Sprintf("%s-%s-%04d", receiptPrefix, now.Format("20060102"), next), nil
}

func (s *Service) sendConfirmation(ctx context.Context, payment *domain.TithePayment, member *domain.Member) {
	message := fmt.Sprintf(
		"Hello %s, your tithe of %s has been recorded. Receipt %s. Thank you!",
		member.Name, payment.Amount, payment.ReceiptNumber,
	)

	canonical := s.normalizer.Normalize(payment.ContactNumber)
	result := s.provider.Send(ctx, canonical, message)

	sentAt := time.Now()
	if err := s.tithes.SetSMSResult(ctx, payment.ID, result.Success, result.MessageID, result.Err, sentAt); err != nil {
		slog.Error("failed to record tithe sms result", "payment_id", payment.ID, "error", err)
		return
	}

	payment.SMSSent = result.Success
	payment.SMSSentAt = &sentAt
	payment.SMSMessageID = result.MessageID
	payment.LastSMSError = result.Err

	if result.Success {
		slog.Info("tithe confirmation sent", "payment_id", payment.ID, "provider", result.Provider)
	} else {
		slog.Error("tithe confirmation failed", "payment_id", payment.ID, "provider", result.Provider, "error", result.Err)
	}
}
