package domain

import "time"

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSending NotificationStatus = "SENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// TargetType selects how a notification's recipients are resolved.
type TargetType string

const (
	TargetMember    TargetType = "MEMBER"
	TargetMinistry  TargetType = "MINISTRY"
	TargetCommunity TargetType = "COMMUNITY"
	TargetAll       TargetType = "ALL"
)

func (t TargetType) IsValid() bool {
	switch t {
	case TargetMember, TargetMinistry, TargetCommunity, TargetAll:
		return true
	default:
		return false
	}
}

// RequiresTargetID reports whether the target type references a specific
// member, ministry or community row.
func (t TargetType) RequiresTargetID() bool {
	return t != TargetAll
}

// Notification is the aggregate root for one SMS dispatch run. Counters
// reflect the most recent dispatch attempt; a resend overwrites them.
type Notification struct {
	ID         string
	Title      string
	Message    string
	TargetType TargetType
	// TargetID references the member, ministry or community when the
	// target type requires one. Empty for TargetAll.
	TargetID string

	// SendSMS false means the record is marked sent without contacting
	// any provider.
	SendSMS bool

	Status          NotificationStatus
	TotalRecipients int
	SentCount       int
	FailedCount     int
	ErrorMessage    string

	CreatedBy string
	CreatedAt time.Time
	SentAt    *time.Time
}

type LogStatus string

const (
	LogStatusPending LogStatus = "PENDING"
	LogStatusSent    LogStatus = "SENT"
	LogStatusFailed  LogStatus = "FAILED"
)

// NotificationLog records one per-recipient send attempt. Rows are
// append-only; a resend writes new rows instead of mutating old ones.
type NotificationLog struct {
	ID             string
	NotificationID string
	MemberID       string
	PhoneNumber    string
	Status         LogStatus
	MessageID      string
	Cost           string
	ErrorMessage   string
	CreatedAt      time.Time
}
