package sms

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// Mock performs no network I/O and always succeeds. It is the provider
// used when live sending is disabled, so the dispatch path stays fully
// exercised in development.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (p *Mock) Name() string { return "mock" }

func (p *Mock) Send(_ context.Context, phone, message string) SendResult {
	return SendResult{
		Success:   true,
		MessageID: mockMessageID(phone, message),
		Provider:  p.Name(),
	}
}

func (p *Mock) SendBulk(ctx context.Context, phones []string, message string) ([]SendResult, error) {
	results := make([]SendResult, 0, len(phones))
	for _, phone := range phones {
		results = append(results, p.Send(ctx, phone, message))
	}
	return results, nil
}

func (p *Mock) Balance(_ context.Context) (string, error) {
	return "", ErrNotSupported
}

// mockMessageID is deterministic for a given phone and message, which
// makes resend behaviour visible in logs.
func mockMessageID(phone, message string) string {
	sum := sha256.Sum256([]byte(phone + "|" + message))
	return fmt.Sprintf("mock-%s-%x", phone, sum[:4])
}
