package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var resendCmd = &cobra.Command{
	Use:   "resend <notification-id>",
	Short: "Run a fresh dispatch attempt for an existing notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var resp struct {
			Outcome outcomeView `json:"outcome"`
		}
		if err := newAPIClient().postJSON(ctx, "/api/notifications/"+args[0]+"/send", nil, &resp); err != nil {
			return err
		}

		if jsonOut {
			data, _ := json.MarshalIndent(resp.Outcome, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Recipients: %d, sent: %d, failed: %d\n", resp.Outcome.Total, resp.Outcome.Sent, resp.Outcome.Failed)
		if resp.Outcome.Error != "" {
			fmt.Printf("Error: %s\n", resp.Outcome.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resendCmd)
}
