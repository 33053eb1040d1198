package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	statusWait     bool
	statusAttempts int
	statusDelay    time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status [uuid]",
	Short: "Fetch the fiscalization report of a registered document",
	Long: `Fetch the current fiscalization state of a document by the UUID
returned at registration.

Examples:
  fiscaldoc status 6d7a0c3e-1b2f-4c5d-8e9a-0f1a2b3c4d5e
  fiscaldoc status 6d7a0c3e-... --wait --attempts 20 --delay 5s`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusWait, "wait", false, "Poll until the document is fiscalized")
	statusCmd.Flags().IntVar(&statusAttempts, "attempts", 10, "Report polling attempts")
	statusCmd.Flags().DurationVar(&statusDelay, "delay", 2*time.Second, "Delay between polling attempts")
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newOperatorClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	documentUUID := args[0]

	if statusWait {
		report, err := client.WaitReport(ctx, documentUUID, statusAttempts, statusDelay)
		if err != nil {
			return err
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	report, err := client.GetReport(ctx, documentUUID)
	if err != nil {
		return err
	}

	if outputFormat == "table" {
		fmt.Printf("uuid:   %s\nstatus: %s\n", report.UUID, report.Status)
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
