package events

import (
	"testing"
	"time"
)

func TestHubSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	sub := &Subscriber{
		ID:     "test-sub-1",
		Events: make(chan DeliveryEvent, 10),
	}
	hub.Subscribe(sub)

	event := DeliveryEvent{
		NotificationID: "notif-1",
		MemberID:       "member-1",
		Phone:          "+255712345678",
		Status:         DeliveryStatusSent,
		Provider:       "mock",
		Timestamp:      time.Now(),
	}

	hub.Publish(event)

	select {
	case received := <-sub.Events:
		if received.NotificationID != event.NotificationID {
			t.Errorf("expected notification ID %s, got %s", event.NotificationID, received.NotificationID)
		}
		if received.Status != event.Status {
			t.Errorf("expected status %s, got %s", event.Status, received.Status)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestHubFilterByNotificationID(t *testing.T) {
	hub := NewHub()

	sub := &Subscriber{
		ID:             "filtered-sub",
		NotificationID: "target-notif",
		Events:         make(chan DeliveryEvent, 10),
	}
	hub.Subscribe(sub)

	hub.Publish(DeliveryEvent{NotificationID: "other-notif", Status: DeliveryStatusSent})
	hub.Publish(DeliveryEvent{NotificationID: "target-notif", Status: DeliveryStatusFailed})

	select {
	case received := <-sub.Events:
		if received.NotificationID != "target-notif" {
			t.Errorf("filter leaked event for %s", received.NotificationID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for filtered event")
	}

	select {
	case received := <-sub.Events:
		t.Errorf("unexpected second event: %+v", received)
	default:
	}
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	// Unbuffered channel with no reader: publishes must not block.
	sub := &Subscriber{
		ID:     "slow-sub",
		Events: make(chan DeliveryEvent),
	}
	hub.Subscribe(sub)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(DeliveryEvent{NotificationID: "n", Status: DeliveryStatusSent})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()

	sub := &Subscriber{ID: "sub-1", Events: make(chan DeliveryEvent, 1)}
	hub.Subscribe(sub)

	if hub.SubscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.SubscriberCount())
	}

	hub.Unsubscribe("sub-1")

	if hub.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", hub.SubscriberCount())
	}

	if _, open := <-sub.Events; open {
		t.Error("expected channel to be closed after unsubscribe")
	}
}
