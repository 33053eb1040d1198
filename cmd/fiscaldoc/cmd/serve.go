package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiscaldoc/fiscaldoc/internal/config"
	"github.com/fiscaldoc/fiscaldoc/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for validating and rendering documents.

The API provides endpoints for:
  - POST /api/v1/receipts/validate     - Validate a receipt
  - POST /api/v1/receipts/render       - Render a receipt canonically
  - POST /api/v1/corrections/validate  - Validate a correction
  - POST /api/v1/corrections/render    - Render a correction canonically
  - POST /api/v1/documents/validate    - Auto-detect and validate
  - POST /api/v1/documents/render      - Auto-detect and render
  - GET  /health                       - Health check

Examples:
  # Start server on default port
  fiscaldoc serve

  # Start on custom port in debug mode
  fiscaldoc serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from config)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (default from config)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if serverAddr == "" {
		serverAddr = cfg.App.Address
	}
	if readTimeout == 0 {
		readTimeout = cfg.App.ReadTimeout
	}
	if writeTimeout == 0 {
		writeTimeout = cfg.App.WriteTimeout
	}

	srv := server.NewServer(&server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug || cfg.App.Debug,
	})

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	return srv.Run()
}
