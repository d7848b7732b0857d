package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <notification-id>",
	Short: "Show the current dispatch status of a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var resp struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		if err := newAPIClient().get(ctx, "/api/notifications/"+args[0]+"/status", &resp); err != nil {
			return err
		}

		if jsonOut {
			data, _ := json.MarshalIndent(resp, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(resp.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
