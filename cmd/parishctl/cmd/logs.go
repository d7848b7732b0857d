package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs <notification-id>",
	Short: "View per-recipient delivery logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var resp struct {
			Logs []logView `json:"logs"`
		}
		if err := newAPIClient().get(ctx, "/api/notifications/"+args[0]+"/logs", &resp); err != nil {
			return err
		}

		if jsonOut {
			data, _ := json.MarshalIndent(resp.Logs, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		if len(resp.Logs) == 0 {
			fmt.Println("No logs found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PHONE\tSTATUS\tMESSAGE ID\tERROR\tCREATED AT")
		for _, l := range resp.Logs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				l.PhoneNumber,
				l.Status,
				l.MessageID,
				l.ErrorMessage,
				l.CreatedAt,
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
