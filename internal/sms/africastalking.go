package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spacecadet3008/Kristo-mfalme/internal/httpclient"
)

const africastalkingDefaultBaseURL = "https://api.africastalking.com"

// AfricasTalking posts form-encoded requests and reads the per-recipient
// status out of SMSMessageData.Recipients. It is the one gateway that
// reports a per-message cost.
type AfricasTalking struct {
	username string
	apiKey   string
	senderID string
	baseURL  string
	client   *httpclient.Client
}

type AfricasTalkingConfig struct {
	Username string `yaml:"username"`
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
	BaseURL  string `yaml:"base_url"`
}

func NewAfricasTalking(cfg AfricasTalkingConfig, client *httpclient.Client) *AfricasTalking {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = africastalkingDefaultBaseURL
	}
	return &AfricasTalking{
		username: cfg.Username,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
		baseURL:  baseURL,
		client:   client,
	}
}

func (p *AfricasTalking) Name() string { return "africastalking" }

func (p *AfricasTalking) configured() bool {
	return p.username != "" && p.apiKey != ""
}

type atRecipient struct {
	Number    string `json:"number"`
	Status    string `json:"status"`
	MessageID string `json:"messageId"`
	Cost      string `json:"cost"`
}

type atSendResponse struct {
	SMSMessageData struct {
		Message    string        `json:"Message"`
		Recipients []atRecipient `json:"Recipients"`
	} `json:"SMSMessageData"`
}

func (p *AfricasTalking) Send(ctx context.Context, phone, message string) SendResult {
	results, err := p.SendBulk(ctx, []string{phone}, message)
	if err != nil {
		return failure(p.Name(), err.Error())
	}
	return results[0]
}

func (p *AfricasTalking) SendBulk(ctx context.Context, phones []string, message string) ([]SendResult, error) {
	fail := func(errMsg string) []SendResult {
		results := make([]SendResult, len(phones))
		for i := range results {
			results[i] = failure(p.Name(), errMsg)
		}
		return results
	}

	if !p.configured() {
		return fail("africastalking not configured"), nil
	}

	form := url.Values{}
	form.Set("username", p.username)
	form.Set("to", strings.Join(phones, ","))
	form.Set("message", message)
	if p.senderID != "" {
		form.Set("from", p.senderID)
	}

	headers := map[string]string{"apiKey": p.apiKey}

	resp, err := p.client.PostForm(ctx, p.baseURL+"/version1/messaging", headers, form)
	if err != nil {
		return fail(err.Error()), nil
	}

	var body atSendResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return fail(fmt.Sprintf("unexpected gateway response (status %d): %v", resp.StatusCode, err)), nil
	}

	recipients := body.SMSMessageData.Recipients
	if len(recipients) == 0 {
		return fail("no recipient data returned"), nil
	}

	// Recipients come back keyed by number, not by request order.
	byNumber := make(map[string]atRecipient, len(recipients))
	for _, r := range recipients {
		byNumber[r.Number] = r
	}

	results := make([]SendResult, 0, len(phones))
	for _, phone := range phones {
		r, ok := byNumber[phone]
		if !ok {
			results = append(results, failure(p.Name(), "no status returned for recipient"))
			continue
		}
		if strings.EqualFold(r.Status, "Success") || strings.EqualFold(r.Status, "Sent") {
			results = append(results, SendResult{
				Success:   true,
				MessageID: r.MessageID,
				Cost:      r.Cost,
				Provider:  p.Name(),
			})
		} else {
			results = append(results, failure(p.Name(), r.Status))
		}
	}
	return results, nil
}

type atBalanceResponse struct {
	UserData struct {
		Balance string `json:"balance"`
	} `json:"UserData"`
}

func (p *AfricasTalking) Balance(ctx context.Context) (string, error) {
	if !p.configured() {
		return "", fmt.Errorf("africastalking not configured")
	}

	headers := map[string]string{"apiKey": p.apiKey}
	resp, err := p.client.Get(ctx, p.baseURL+"/version1/user?username="+url.QueryEscape(p.username), headers)
	if err != nil {
		return "", fmt.Errorf("get balance: %w", err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body atBalanceResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", fmt.Errorf("unexpected gateway response: %w", err)
	}
	return body.UserData.Balance, nil
}
