package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	sendTitle       string
	sendMessage     string
	sendTarget      string
	sendTargetID    string
	sendNoSMS       bool
	sendCreatedBy   string
	sendPayloadPath string
)

type sendPayload struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	SendSMS    *bool  `json:"send_sms"`
	CreatedBy  string `json:"created_by"`
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Create a notification and dispatch it immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := sendPayload{
			Title:      sendTitle,
			Message:    sendMessage,
			TargetType: sendTarget,
			TargetID:   sendTargetID,
			CreatedBy:  sendCreatedBy,
		}
		if sendPayloadPath != "" {
			data, err := os.ReadFile(sendPayloadPath)
			if err != nil {
				return fmt.Errorf("read payload file: %w", err)
			}
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("parse JSON payload: %w", err)
			}
		}
		if p.Title == "" || p.Message == "" {
			return fmt.Errorf("title and message are required (flags or --payload)")
		}
		if p.TargetType == "" {
			p.TargetType = "ALL"
		}

		sendSMS := !sendNoSMS
		if p.SendSMS != nil {
			sendSMS = *p.SendSMS
		}

		payload := map[string]any{
			"title":       p.Title,
			"message":     p.Message,
			"target_type": p.TargetType,
			"target_id":   p.TargetID,
			"send_sms":    sendSMS,
			"created_by":  p.CreatedBy,
			"dispatch":    true,
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var resp struct {
			Notification notificationView `json:"notification"`
			Outcome      outcomeView      `json:"outcome"`
		}
		if err := newAPIClient().postJSON(ctx, "/api/notifications", payload, &resp); err != nil {
			return err
		}

		if jsonOut {
			data, _ := json.MarshalIndent(resp, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Notification %s: %s\n", resp.Notification.ID, resp.Notification.Status)
		fmt.Printf("Recipients: %d, sent: %d, failed: %d\n", resp.Outcome.Total, resp.Outcome.Sent, resp.Outcome.Failed)
		if resp.Outcome.Error != "" {
			fmt.Printf("Error: %s\n", resp.Outcome.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendTitle, "title", "", "Notification title")
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "SMS message body")
	sendCmd.Flags().StringVar(&sendTarget, "target", "ALL", "Target type: MEMBER, MINISTRY, COMMUNITY or ALL")
	sendCmd.Flags().StringVar(&sendTargetID, "target-id", "", "Target member/ministry/community ID")
	sendCmd.Flags().BoolVar(&sendNoSMS, "no-sms", false, "Record the notification without sending SMS")
	sendCmd.Flags().StringVar(&sendCreatedBy, "created-by", "", "Author recorded on the notification")
	sendCmd.Flags().StringVar(&sendPayloadPath, "payload", "", "Path to JSON payload file (overrides flags)")
}
