package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spacecadet3008/Kristo-mfalme/internal/cache"
	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
	"github.com/spacecadet3008/Kristo-mfalme/internal/events"
	"github.com/spacecadet3008/Kristo-mfalme/internal/phone"
	"github.com/spacecadet3008/Kristo-mfalme/internal/sms"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
)

// noPhonePlaceholder is recorded on log rows for members without a
// telephone on file.
const noPhonePlaceholder = "N/A"

// Outcome reports how a dispatch run went. Success=false only when the
// run itself aborted (no recipients, internal error); a run where every
// individual send failed still completes with Success=true.
type Outcome struct {
	Success bool   `json:"success"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Total   int    `json:"total"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher runs a notification's send loop: resolve recipients, send
// one SMS per member, log every attempt, then settle the aggregate
// counters and status.
//
// Dispatch runs in the calling goroutine; callers must not invoke it
// concurrently for the same notification id.
type Dispatcher struct {
	notifications store.NotificationStore
	logs          store.NotificationLogStore
	resolver      *Resolver
	provider      sms.Provider
	normalizer    *phone.Normalizer
	hub           *events.Hub
	statusCache   *cache.StatusCache
}

func NewDispatcher(
	notifications store.NotificationStore,
	logs store.NotificationLogStore,
	resolver *Resolver,
	provider sms.Provider,
	normalizer *phone.Normalizer,
	hub *events.Hub,
	statusCache *cache.StatusCache,
) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		logs:          logs,
		resolver:      resolver,
		provider:      provider,
		normalizer:    normalizer,
		hub:           hub,
		statusCache:   statusCache,
	}
}

// Dispatch performs one full send attempt for the notification. It is
// re-entrant: calling it again on a SENT or FAILED notification runs a
// fresh attempt that appends new logs and overwrites the counters.
func (d *Dispatcher) Dispatch(ctx context.Context, notificationID string) Outcome {
	n, err := d.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return Outcome{Success: false, Error: "notification not found"}
	}

	now := time.Now()

	// SMS disabled: mark the record sent without contacting a provider.
	if !n.SendSMS {
		if err := d.notifications.Finish(ctx, n.ID, 0, 0, domain.NotificationStatusSent, now); err != nil {
			return d.fail(ctx, n.ID, err.Error())
		}
		d.cacheStatus(ctx, n.ID, domain.NotificationStatusSent)
		return Outcome{Success: true}
	}

	if err := d.notifications.MarkSending(ctx, n.ID); err != nil {
		return Outcome{Success: false, Error: err.Error()}
	}
	d.cacheStatus(ctx, n.ID, domain.NotificationStatusSending)
	d.publish(events.DeliveryEvent{
		NotificationID: n.ID,
		Status:         events.DeliveryStatusSending,
		Timestamp:      now,
	})

	recipients, err := d.resolver.Resolve(ctx, n)
	if err != nil {
		return d.fail(ctx, n.ID, err.Error())
	}

	if err := d.notifications.SetTotalRecipients(ctx, n.ID, len(recipients)); err != nil {
		return d.fail(ctx, n.ID, err.Error())
	}

	if len(recipients) == 0 {
		return d.fail(ctx, n.ID, "No recipients found")
	}

	sent, failed := 0, 0
	for _, member := range recipients {
		logEntry, ok := d.sendToMember(ctx, n, member)
		if ok {
			sent++
		} else {
			failed++
		}

		if err := d.logs.Create(ctx, logEntry); err != nil {
			// Logs written so far stay in place; the run aborts.
			return d.fail(ctx, n.ID, err.Error())
		}
	}

	status := domain.NotificationStatusFailed
	if sent > 0 {
		status = domain.NotificationStatusSent
	}

	sentAt := time.Now()
	if err := d.notifications.Finish(ctx, n.ID, sent, failed, status, sentAt); err != nil {
		return d.fail(ctx, n.ID, err.Error())
	}
	d.cacheStatus(ctx, n.ID, status)
	d.publish(events.DeliveryEvent{
		NotificationID: n.ID,
		Status:         toEventStatus(status),
		Message:        "dispatch complete",
		Timestamp:      sentAt,
	})

	slog.Info("notification dispatched",
		"notification_id", n.ID,
		"provider", d.provider.Name(),
		"total", len(recipients),
		"sent", sent,
		"failed", failed,
	)

	return Outcome{
		Success: true,
		Sent:    sent,
		Failed:  failed,
		Total:   len(recipients),
	}
}

// sendToMember handles one recipient and returns the log row to append
// plus whether the send counted as successful. Provider failures never
// abort the run.
func (d *Dispatcher) sendToMember(ctx context.Context, n *domain.Notification, member domain.Member) (*domain.NotificationLog, bool) {
	logEntry := &domain.NotificationLog{
		ID:             uuid.New().String(),
		NotificationID: n.ID,
		MemberID:       member.ID,
		CreatedAt:      time.Now(),
	}

	if member.Telephone == "" {
		logEntry.PhoneNumber = noPhonePlaceholder
		logEntry.Status = domain.LogStatusFailed
		logEntry.ErrorMessage = "No phone number"
		d.publish(events.DeliveryEvent{
			NotificationID: n.ID,
			MemberID:       member.ID,
			MemberName:     member.Name,
			Phone:          noPhonePlaceholder,
			Status:         events.DeliveryStatusFailed,
			Message:        "No phone number",
			Timestamp:      logEntry.CreatedAt,
		})
		return logEntry, false
	}

	canonical := d.normalizer.Normalize(member.Telephone)
	logEntry.PhoneNumber = canonical

	result := d.provider.Send(ctx, canonical, n.Message)
	logEntry.MessageID = result.MessageID
	logEntry.Cost = result.Cost

	eventStatus := events.DeliveryStatusFailed
	if result.Success {
		logEntry.Status = domain.LogStatusSent
		eventStatus = events.DeliveryStatusSent
	} else {
		logEntry.Status = domain.LogStatusFailed
		logEntry.ErrorMessage = result.Err
	}

	d.publish(events.DeliveryEvent{
		NotificationID: n.ID,
		MemberID:       member.ID,
		MemberName:     member.Name,
		Phone:          canonical,
		Status:         eventStatus,
		Message:        result.Err,
		Provider:       result.Provider,
		Timestamp:      logEntry.CreatedAt,
	})

	return logEntry, result.Success
}

// fail records a top-level dispatch failure and returns the outcome.
func (d *Dispatcher) fail(ctx context.Context, id, errorMessage string) Outcome {
	if err := d.notifications.MarkFailed(ctx, id, errorMessage); err != nil {
		slog.Error("failed to mark notification failed", "notification_id", id, "error", err)
	}
	d.cacheStatus(ctx, id, domain.NotificationStatusFailed)
	d.publish(events.DeliveryEvent{
		NotificationID: id,
		Status:         events.DeliveryStatusFailed,
		Message:        errorMessage,
		Timestamp:      time.Now(),
	})
	return Outcome{Success: false, Error: errorMessage}
}

func (d *Dispatcher) cacheStatus(ctx context.Context, id string, status domain.NotificationStatus) {
	if err := d.statusCache.Set(ctx, id, status); err != nil {
		slog.Warn("failed to cache notification status", "notification_id", id, "error", err)
	}
}

func (d *Dispatcher) publish(event events.DeliveryEvent) {
	if d.hub != nil {
		d.hub.Publish(event)
	}
}

func toEventStatus(status domain.NotificationStatus) events.DeliveryStatus {
	switch status {
	case domain.NotificationStatusSent:
		return events.DeliveryStatusSent
	case domain.NotificationStatusSending:
		return events.DeliveryStatusSending
	default:
		return events.DeliveryStatusFailed
	}
}
