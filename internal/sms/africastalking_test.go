package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAfricasTalkingSendSuccess(t *testing.T) {
	var gotAPIKey, gotTo string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apiKey")
		r.ParseForm()
		gotTo = r.PostFormValue("to")
		w.Write([]byte(`{
			"SMSMessageData": {
				"Message": "Sent to 1/1 Total Cost: TZS 28.00",
				"Recipients": [{
					"number": "+255712345678",
					"status": "Success",
					"messageId": "ATXid_abc123",
					"cost": "TZS 28.0000"
				}]
			}
		}`))
	}))
	defer server.Close()

	p := NewAfricasTalking(AfricasTalkingConfig{
		Username: "parish",
		APIKey:   "at-key",
		BaseURL:  server.URL,
	}, newTestClient())

	result := p.Send(context.Background(), "+255712345678", "hello")

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Err)
	}
	if result.MessageID != "ATXid_abc123" {
		t.Errorf("expected message id ATXid_abc123, got %q", result.MessageID)
	}
	if result.Cost != "TZS 28.0000" {
		t.Errorf("expected cost TZS 28.0000, got %q", result.Cost)
	}
	if gotAPIKey != "at-key" {
		t.Errorf("expected apiKey header, got %q", gotAPIKey)
	}
	if gotTo != "+255712345678" {
		t.Errorf("expected form to=+255712345678, got %q", gotTo)
	}
}

func TestAfricasTalkingSendRejectedRecipient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"SMSMessageData": {
				"Recipients": [{
					"number": "+255712345678",
					"status": "InvalidPhoneNumber"
				}]
			}
		}`))
	}))
	defer server.Close()

	p := NewAfricasTalking(AfricasTalkingConfig{Username: "u", APIKey: "k", BaseURL: server.URL}, newTestClient())

	result := p.Send(context.Background(), "+255712345678", "hello")

	if result.Success {
		t.Fatal("expected failure for rejected recipient")
	}
	if result.Err != "InvalidPhoneNumber" {
		t.Errorf("expected recipient status as error, got %q", result.Err)
	}
}

func TestAfricasTalkingSendNoRecipientData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SMSMessageData": {"Recipients": []}}`))
	}))
	defer server.Close()

	p := NewAfricasTalking(AfricasTalkingConfig{Username: "u", APIKey: "k", BaseURL: server.URL}, newTestClient())

	result := p.Send(context.Background(), "+255712345678", "hello")

	if result.Success {
		t.Fatal("expected failure when no recipient data returned")
	}
	if result.Err != "no recipient data returned" {
		t.Errorf("unexpected error %q", result.Err)
	}
}

func TestAfricasTalkingNotConfigured(t *testing.T) {
	p := NewAfricasTalking(AfricasTalkingConfig{}, newTestClient())

	result := p.Send(context.Background(), "+255712345678", "hello")

	if result.Success {
		t.Fatal("expected failure when credentials are missing")
	}
	if result.Err != "africastalking not configured" {
		t.Errorf("expected fixed not-configured error, got %q", result.Err)
	}
}
