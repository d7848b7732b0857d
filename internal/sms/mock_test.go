package sms

import (
	"context"
	"errors"
	"testing"
)

func TestMockSendAlwaysSucceeds(t *testing.T) {
	p := NewMock()

	result := p.Send(context.Background(), "+255712345678", "hello")

	if !result.Success {
		t.Fatalf("mock send failed: %q", result.Err)
	}
	if result.MessageID == "" {
		t.Error("expected synthesized message id")
	}
	if result.Provider != "mock" {
		t.Errorf("expected provider mock, got %q", result.Provider)
	}
}

func TestMockMessageIDDeterministic(t *testing.T) {
	p := NewMock()

	a := p.Send(context.Background(), "+255712345678", "hello")
	b := p.Send(context.Background(), "+255712345678", "hello")
	c := p.Send(context.Background(), "+255712345678", "different")

	if a.MessageID != b.MessageID {
		t.Errorf("same input produced different ids: %q vs %q", a.MessageID, b.MessageID)
	}
	if a.MessageID == c.MessageID {
		t.Error("different messages produced the same id")
	}
}

func TestMockBalanceNotSupported(t *testing.T) {
	p := NewMock()

	if _, err := p.Balance(context.Background()); !errors.Is(err, ErrNotSupported) {
		t.Errorf("expected ErrNotSupported, got %v", err)
	}
}

func TestFromSettings(t *testing.T) {
	client := newTestClient()

	if p, err := FromSettings(Settings{Provider: "mock"}, client); err != nil || p.Name() != "mock" {
		t.Errorf("expected mock provider, got %v, %v", p, err)
	}
	if p, err := FromSettings(Settings{}, client); err != nil || p.Name() != "mock" {
		t.Errorf("expected empty provider to default to mock, got %v, %v", p, err)
	}
	if p, err := FromSettings(Settings{Provider: "nextsms"}, client); err != nil || p.Name() != "nextsms" {
		t.Errorf("expected nextsms provider, got %v, %v", p, err)
	}
	if p, err := FromSettings(Settings{Provider: "beem"}, client); err != nil || p.Name() != "beem" {
		t.Errorf("expected beem provider, got %v, %v", p, err)
	}
	if p, err := FromSettings(Settings{Provider: "africastalking"}, client); err != nil || p.Name() != "africastalking" {
		t.Errorf("expected africastalking provider, got %v, %v", p, err)
	}
	if _, err := FromSettings(Settings{Provider: "bogus"}, client); err == nil {
		t.Error("expected error for unknown provider")
	}
}
