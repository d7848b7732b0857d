package events

import "time"

type DeliveryStatus string

const (
	DeliveryStatusSending DeliveryStatus = "SENDING"
	DeliveryStatusSent    DeliveryStatus = "SENT"
	DeliveryStatusFailed  DeliveryStatus = "FAILED"
)

// DeliveryEvent is emitted once per recipient as a dispatch run works
// through its list, plus one terminal event for the run itself.
type DeliveryEvent struct {
	NotificationID string         `json:"notification_id"`
	MemberID       string         `json:"member_id,omitempty"`
	MemberName     string         `json:"member_name,omitempty"`
	Phone          string         `json:"phone,omitempty"`
	Status         DeliveryStatus `json:"status"`
	Message        string         `json:"message,omitempty"`
	Provider       string         `json:"provider,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}
