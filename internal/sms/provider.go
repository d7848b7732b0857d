// Package sms abstracts the SMS gateways behind a single Provider
// interface returning a uniform SendResult, so the dispatcher never
// branches on provider-specific payload shapes.
package sms

import (
	"context"
	"errors"
)

var (
	// ErrNotSupported is returned by optional capabilities (bulk send,
	// balance) an adapter does not implement.
	ErrNotSupported = errors.New("operation not supported by provider")
)

// SendResult is the normalized outcome of one send call. Transport,
// protocol and configuration failures all land here as Success=false;
// Send never returns a Go error to its caller.
type SendResult struct {
	Success   bool
	MessageID string
	// Cost is the provider-reported cost string, opaque to us.
	Cost     string
	Err      string
	Provider string
}

type Provider interface {
	Name() string

	// Send delivers one message to one canonical phone number.
	Send(ctx context.Context, phone, message string) SendResult

	// SendBulk delivers one message to many numbers in a single gateway
	// call. Returns ErrNotSupported where the gateway has no bulk API.
	SendBulk(ctx context.Context, phones []string, message string) ([]SendResult, error)

	// Balance reports the remaining account credit as an opaque string.
	// Returns ErrNotSupported where the gateway has no balance API.
	Balance(ctx context.Context) (string, error)
}

// failure builds a failed SendResult tagged with the provider name.
func failure(provider, errMsg string) SendResult {
	return SendResult{Success: false, Err: errMsg, Provider: provider}
}
