package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string

	operatorURL      string
	operatorLogin    string
	operatorPassword string
	groupCode        string
	callbackURL      string
)

var rootCmd = &cobra.Command{
	Use:   "fiscaldoc",
	Short: "Build, validate, and register fiscal documents",
	Long: `Fiscaldoc is a CLI tool for working with fiscal receipts and
correction documents.

Supports:
  - Validation of receipt and correction JSON against fiscal rules
  - Canonical rendering with recomputed totals and fixed-point sums
  - Registration with a fiscal operator and report polling

Examples:
  # Validate a receipt
  fiscaldoc validate receipt.json

  # Render a document in canonical form
  fiscaldoc render receipt.json

  # Register a sale and wait for fiscalization
  fiscaldoc send receipt.json --operation sell --wait

  # Check a registered document
  fiscaldoc status 6d7a0c3e-...`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&operatorURL, "operator-url", "", "Fiscal operator base URL (env: OPERATOR_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&operatorLogin, "login", "", "Operator account login (env: OPERATOR_LOGIN)")
	rootCmd.PersistentFlags().StringVar(&operatorPassword, "password", "", "Operator account password (env: OPERATOR_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&groupCode, "group", "", "Operator group code (env: OPERATOR_GROUP_CODE)")
	rootCmd.PersistentFlags().StringVar(&callbackURL, "callback-url", "", "Fiscalization callback URL (env: OPERATOR_CALLBACK_URL)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if operatorURL == "" {
		operatorURL = os.Getenv("OPERATOR_BASE_URL")
	}
	if operatorLogin == "" {
		operatorLogin = os.Getenv("OPERATOR_LOGIN")
	}
	if operatorPassword == "" {
		operatorPassword = os.Getenv("OPERATOR_PASSWORD")
	}
	if groupCode == "" {
		groupCode = os.Getenv("OPERATOR_GROUP_CODE")
	}
	if callbackURL == "" {
		callbackURL = os.Getenv("OPERATOR_CALLBACK_URL")
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
