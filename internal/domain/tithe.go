package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodBank PaymentMethod = "bank"
)

// TithePayment records a single tithe contribution. The SMS fields track
// the confirmation message sent to the contributing member.
type TithePayment struct {
	ID            string
	MemberID      string
	ContactNumber string
	Amount        string
	Method        PaymentMethod
	ReceiptNumber string

	SMSSent      bool
	SMSSentAt    *time.Time
	SMSMessageID string
	LastSMSError string

	PaidAt    time.Time
	CreatedAt time.Time
}
