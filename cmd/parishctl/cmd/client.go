package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spacecadet3008/Kristo-mfalme/internal/httpclient"
)

const requestTimeout = 30 * time.Second

type notificationView struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	TargetType      string `json:"target_type"`
	TargetID        string `json:"target_id"`
	Status          string `json:"status"`
	TotalRecipients int    `json:"total_recipients"`
	SMSSentCount    int    `json:"sms_sent_count"`
	SMSFailedCount  int    `json:"sms_failed_count"`
	ErrorMessage    string `json:"error_message"`
	CreatedAt       string `json:"created_at"`
}

type outcomeView struct {
	Success bool   `json:"success"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Total   int    `json:"total"`
	Error   string `json:"error"`
}

type logView struct {
	MemberID     string `json:"member_id"`
	PhoneNumber  string `json:"phone_number"`
	Status       string `json:"status"`
	MessageID    string `json:"message_id"`
	Cost         string `json:"cost"`
	ErrorMessage string `json:"error_message"`
	CreatedAt    string `json:"created_at"`
}

type apiClient struct {
	base string
	key  string
	http *httpclient.Client
}

func newAPIClient() *apiClient {
	return &apiClient{
		base: strings.TrimRight(serverAddr, "/"),
		key:  apiKey,
		http: httpclient.New(requestTimeout),
	}
}

func (c *apiClient) headers() map[string]string {
	h := map[string]string{}
	if c.key != "" {
		h["X-API-Key"] = c.key
	}
	return h
}

func (c *apiClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	resp, err := c.http.PostJSON(ctx, c.base+path, c.headers(), body)
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

func (c *apiClient) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.Get(ctx, c.base+path, c.headers())
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

func (c *apiClient) decode(resp *httpclient.Response, out any) error {
	// 422 still carries a dispatch outcome worth showing.
	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusUnprocessableEntity {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(resp.Body, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
