package sms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/spacecadet3008/Kristo-mfalme/internal/httpclient"
)

const beemDefaultBaseURL = "https://apisms.beem.africa"

// Beem is the basic-auth JSON gateway. Success is defined by the
// "successful" boolean in the response body, not the HTTP status alone;
// the message id comes from "request_id".
type Beem struct {
	apiKey    string
	secretKey string
	senderID  string
	baseURL   string
	client    *httpclient.Client
}

type BeemConfig struct {
	APIKey    string `yaml:"api_key"`
	SecretKey string `yaml:"secret_key"`
	SenderID  string `yaml:"sender_id"`
	BaseURL   string `yaml:"base_url"`
}

func NewBeem(cfg BeemConfig, client *httpclient.Client) *Beem {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = beemDefaultBaseURL
	}
	return &Beem{
		apiKey:    cfg.APIKey,
		secretKey: cfg.SecretKey,
		senderID:  cfg.SenderID,
		baseURL:   baseURL,
		client:    client,
	}
}

func (p *Beem) Name() string { return "beem" }

func (p *Beem) configured() bool {
	return p.apiKey != "" && p.secretKey != ""
}

func (p *Beem) authHeaders() map[string]string {
	creds := base64.StdEncoding.EncodeToString([]byte(p.apiKey + ":" + p.secretKey))
	return map[string]string{
		"Authorization": "Basic " + creds,
	}
}

type beemRecipient struct {
	RecipientID int    `json:"recipient_id"`
	DestAddr    string `json:"dest_addr"`
}

type beemSendRequest struct {
	SourceAddr   string          `json:"source_addr"`
	Encoding     int             `json:"encoding"`
	ScheduleTime string          `json:"schedule_time"`
	Message      string          `json:"message"`
	Recipients   []beemRecipient `json:"recipients"`
}

type beemSendResponse struct {
	Successful bool        `json:"successful"`
	RequestID  json.Number `json:"request_id"`
	Code       int         `json:"code"`
	Message    string      `json:"message"`
}

func (p *Beem) Send(ctx context.Context, phone, message string) SendResult {
	results := p.send(ctx, []string{phone}, message)
	return results[0]
}

// SendBulk uses the same endpoint as Send; the gateway accepts many
// recipients per request but reports a single request-level outcome.
func (p *Beem) SendBulk(ctx context.Context, phones []string, message string) ([]SendResult, error) {
	return p.send(ctx, phones, message), nil
}

func (p *Beem) send(ctx context.Context, phones []string, message string) []SendResult {
	fail := func(errMsg string) []SendResult {
		results := make([]SendResult, len(phones))
		for i := range results {
			results[i] = failure(p.Name(), errMsg)
		}
		return results
	}

	if !p.configured() {
		return fail("beem not configured")
	}

	recipients := make([]beemRecipient, 0, len(phones))
	for i, phone := range phones {
		recipients = append(recipients, beemRecipient{RecipientID: i + 1, DestAddr: phone})
	}

	payload, err := json.Marshal(beemSendRequest{
		SourceAddr: p.senderID,
		Message:    message,
		Recipients: recipients,
	})
	if err != nil {
		return fail(fmt.Sprintf("encode request: %v", err))
	}

	resp, err := p.client.PostJSON(ctx, p.baseURL+"/v1/send", p.authHeaders(), payload)
	if err != nil {
		return fail(err.Error())
	}

	var body beemSendResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return fail(fmt.Sprintf("unexpected gateway response (status %d): %v", resp.StatusCode, err))
	}

	if !body.Successful {
		errMsg := body.Message
		if errMsg == "" {
			errMsg = fmt.Sprintf("gateway returned status %d", resp.StatusCode)
		}
		return fail(errMsg)
	}

	results := make([]SendResult, len(phones))
	for i := range results {
		results[i] = SendResult{
			Success:   true,
			MessageID: body.RequestID.String(),
			Provider:  p.Name(),
		}
	}
	return results
}

type beemBalanceResponse struct {
	Data struct {
		CreditBalance json.Number `json:"credit_balance"`
	} `json:"data"`
}

func (p *Beem) Balance(ctx context.Context) (string, error) {
	if !p.configured() {
		return "", fmt.Errorf("beem not configured")
	}

	resp, err := p.client.Get(ctx, p.baseURL+"/public/v1/vendors/balance", p.authHeaders())
	if err != nil {
		return "", fmt.Errorf("get balance: %w", err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body beemBalanceResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", fmt.Errorf("unexpected gateway response: %w", err)
	}
	return body.Data.CreditBalance.String(), nil
}
