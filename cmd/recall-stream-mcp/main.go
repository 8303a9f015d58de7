package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/recall-stream/pkg/mcpsrv"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A nil transport connects to RECALL_WS_URL. Configuration is loaded
	// from environment variables:
	// - LOG_LEVEL, LOG_FILE, LOG_FORMAT: logging
	// - RECALL_WS_URL, DIAL_TIMEOUT_MS: search backend
	// - SEARCH_WAIT_MS: how long recall_search blocks
	// - METRICS_ADDR: Prometheus endpoint (disabled when empty)
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer(nil)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting recall-stream MCP server on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
