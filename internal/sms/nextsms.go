package sms

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spacecadet3008/Kristo-mfalme/internal/httpclient"
)

const nextsmsDefaultBaseURL = "https://apigw.nextsms.com"

// NextSMS is the bearer-auth JSON gateway. Success is defined by the
// HTTP status code; the message id comes from "messageId" with "id" as
// an older fallback.
type NextSMS struct {
	apiKey    string
	apiSecret string
	senderID  string
	baseURL   string
	client    *httpclient.Client
}

type NextSMSConfig struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	SenderID  string `yaml:"sender_id"`
	BaseURL   string `yaml:"base_url"`
}

func NewNextSMS(cfg NextSMSConfig, client *httpclient.Client) *NextSMS {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = nextsmsDefaultBaseURL
	}
	return &NextSMS{
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		senderID:  cfg.SenderID,
		baseURL:   baseURL,
		client:    client,
	}
}

func (p *NextSMS) Name() string { return "nextsms" }

func (p *NextSMS) configured() bool {
	return p.apiKey != "" && p.apiSecret != ""
}

func (p *NextSMS) authHeaders() map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s:%s", p.apiKey, p.apiSecret),
	}
}

type nextsmsSingleRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type nextsmsSingleResponse struct {
	MessageID json.Number `json:"messageId"`
	ID        json.Number `json:"id"`
}

func (p *NextSMS) Send(ctx context.Context, phone, message string) SendResult {
	if !p.configured() {
		return failure(p.Name(), "nextsms not configured")
	}

	payload, err := json.Marshal(nextsmsSingleRequest{
		From: p.senderID,
		To:   phone,
		Text: message,
	})
	if err != nil {
		return failure(p.Name(), fmt.Sprintf("encode request: %v", err))
	}

	resp, err := p.client.PostJSON(ctx, p.baseURL+"/api/sms/v1/text/single", p.authHeaders(), payload)
	if err != nil {
		return failure(p.Name(), err.Error())
	}

	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		return failure(p.Name(), fmt.Sprintf("gateway returned status %d: %s", resp.StatusCode, truncate(resp.Body, 200)))
	}

	var body nextsmsSingleResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return failure(p.Name(), fmt.Sprintf("unexpected gateway response: %v", err))
	}

	messageID := body.MessageID.String()
	if messageID == "" {
		messageID = body.ID.String()
	}

	return SendResult{
		Success:   true,
		MessageID: messageID,
		Provider:  p.Name(),
	}
}

type nextsmsMultiRequest struct {
	From string   `json:"from"`
	To   []string `json:"to"`
	Text string   `json:"text"`
}

type nextsmsMultiResponse struct {
	Messages []nextsmsSingleResponse `json:"messages"`
}

func (p *NextSMS) SendBulk(ctx context.Context, phones []string, message string) ([]SendResult, error) {
	if !p.configured() {
		return nil, fmt.Errorf("nextsms not configured")
	}

	payload, err := json.Marshal(nextsmsMultiRequest{
		From: p.senderID,
		To:   phones,
		Text: message,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := p.client.PostJSON(ctx, p.baseURL+"/api/sms/v1/text/multi", p.authHeaders(), payload)
	if err != nil {
		return nil, fmt.Errorf("send bulk sms: %w", err)
	}

	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body nextsmsMultiResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("unexpected gateway response: %w", err)
	}

	results := make([]SendResult, 0, len(phones))
	for i := range phones {
		r := SendResult{Success: true, Provider: p.Name()}
		if i < len(body.Messages) {
			r.MessageID = body.Messages[i].MessageID.String()
		}
		results = append(results, r)
	}
	return results, nil
}

type nextsmsBalanceResponse struct {
	SMSBalance json.Number `json:"sms_balance"`
}

func (p *NextSMS) Balance(ctx context.Context) (string, error) {
	if !p.configured() {
		return "", fmt.Errorf("nextsms not configured")
	}

	resp, err := p.client.Get(ctx, p.baseURL+"/api/sms/v1/balance", p.authHeaders())
	if err != nil {
		return "", fmt.Errorf("get balance: %w", err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body nextsmsBalanceResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", fmt.Errorf("unexpected gateway response: %w", err)
	}
	return body.SMSBalance.String(), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
