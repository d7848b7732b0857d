package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the SMS gateway credit balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var resp struct {
			Provider string `json:"provider"`
			Balance  string `json:"balance"`
		}
		if err := newAPIClient().get(ctx, "/api/sms/balance", &resp); err != nil {
			return err
		}

		if jsonOut {
			data, _ := json.MarshalIndent(resp, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("%s: %s\n", resp.Provider, resp.Balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
