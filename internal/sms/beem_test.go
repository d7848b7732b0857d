package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBeemSendSuccess(t *testing.T) {
	var gotBody beemSendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); !ok || user != "key" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"successful": true, "request_id": 35918, "code": 100, "message": "Message Submitted Successfully"}`))
	}))
	defer server.Close()

	p := NewBeem(BeemConfig{
		APIKey:    "key",
		SecretKey: "secret",
		SenderID:  "PARISH",
		BaseURL:   server.URL,
	}, newTestClient())

	result := p.Send(context.Background(), "+255712345678", "hello")

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Err)
	}
	if result.MessageID != "35918" {
		t.Errorf("expected message id 35918, got %q", result.MessageID)
	}
	if len(gotBody.Recipients) != 1 || gotBody.Recipients[0].DestAddr != "+255712345678" {
		t.Errorf("unexpected recipients %v", gotBody.Recipients)
	}
	if gotBody.SourceAddr != "PARISH" {
		t.Errorf("expected source_addr PARISH, got %q", gotBody.SourceAddr)
	}
}

func TestBeemSendUnsuccessfulResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"successful": false, "code": 107, "message": "Invalid sender id"}`))
	}))
	defer server.Close()

	p := NewBeem(BeemConfig{APIKey: "k", SecretKey: "s", BaseURL: server.URL}, newTestClient())

	result := p.Send(context.Background(), "+255712345678", "hello")

	if result.Success {
		t.Fatal("expected failure when successful=false")
	}
	if result.Err != "Invalid sender id" {
		t.Errorf("expected gateway message preserved, got %q", result.Err)
	}
}

func TestBeemSendMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>upstream error</html>`))
	}))
	defer server.Close()

	p := NewBeem(BeemConfig{APIKey: "k", SecretKey: "s", BaseURL: server.URL}, newTestClient())

	result := p.Send(context.Background(), "+255712345678", "hello")

	if result.Success {
		t.Fatal("expected failure on malformed response")
	}
}

func TestBeemSendBulkSharesRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"successful": true, "request_id": 777}`))
	}))
	defer server.Close()

	p := NewBeem(BeemConfig{APIKey: "k", SecretKey: "s", BaseURL: server.URL}, newTestClient())

	results, err := p.SendBulk(context.Background(), []string{"+255700000001", "+255700000002"}, "hello")
	if err != nil {
		t.Fatalf("SendBulk failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Success || r.MessageID != "777" {
			t.Errorf("unexpected result %+v", r)
		}
	}
}

func TestBeemNotConfigured(t *testing.T) {
	p := NewBeem(BeemConfig{}, newTestClient())

	result := p.Send(context.Background(), "+255712345678", "hello")

	if result.Success {
		t.Fatal("expected failure when credentials are missing")
	}
	if result.Err != "beem not configured" {
		t.Errorf("expected fixed not-configured error, got %q", result.Err)
	}
}

func TestBeemBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"credit_balance": "284.57"}}`))
	}))
	defer server.Close()

	p := NewBeem(BeemConfig{APIKey: "k", SecretKey: "s", BaseURL: server.URL}, newTestClient())

	balance, err := p.Balance(context.Background())
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance != "284.57" {
		t.Errorf("expected balance 284.57, got %q", balance)
	}
}
