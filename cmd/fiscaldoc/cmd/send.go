package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiscaldoc/fiscaldoc/internal/gateway"
	"github.com/fiscaldoc/fiscaldoc/internal/parser"
)

var (
	sendOperation  string
	sendExternalID string
	sendWait       bool
	sendAttempts   int
	sendDelay      time.Duration
)

var sendCmd = &cobra.Command{
	Use:   "send [file]",
	Short: "Register a document with the fiscal operator",
	Long: `Parse a fiscal document and register it with the operator under
the given operation.

Receipt operations: sell, sell_refund, buy, buy_refund
Correction operations: sell_correction, buy_correction

Examples:
  fiscaldoc send receipt.json --operation sell
  fiscaldoc send correction.json --operation sell_correction --wait
  fiscaldoc send receipt.json --operation sell --external-id order-42`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendOperation, "operation", "sell", "Registration operation")
	sendCmd.Flags().StringVar(&sendExternalID, "external-id", "", "External document ID (generated when empty)")
	sendCmd.Flags().BoolVar(&sendWait, "wait", false, "Poll until the document is fiscalized")
	sendCmd.Flags().IntVar(&sendAttempts, "attempts", 10, "Report polling attempts")
	sendCmd.Flags().DurationVar(&sendDelay, "delay", 2*time.Second, "Delay between polling attempts")
}

func newOperatorClient() (*gateway.Client, error) {
	if operatorURL == "" || operatorLogin == "" || groupCode == "" {
		return nil, fmt.Errorf("operator URL, login, and group code are required; set flags or OPERATOR_* environment variables")
	}

	var opts []gateway.ClientOption
	if callbackURL != "" {
		opts = append(opts, gateway.WithCallbackURL(callbackURL))
	}
	return gateway.NewClient(operatorURL, operatorLogin, operatorPassword, groupCode, opts...), nil
}

func runSend(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	doc, kind, err := parser.Parse(data)
	if err != nil {
		return err
	}
	printVerbose("detected %s\n", kind)

	client, err := newOperatorClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := client.Register(ctx, gateway.Operation(sendOperation), doc, sendExternalID)
	if err != nil {
		return err
	}
	printVerbose("registered as %s\n", resp.UUID)

	if !sendWait {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(resp)
	}

	report, err := client.WaitReport(ctx, resp.UUID, sendAttempts, sendDelay)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
