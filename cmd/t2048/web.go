package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the JSON/WebSocket API",
	Long: `Serve games over HTTP for web front-ends.

Endpoints:
  GET    /health
  GET    /presets
  POST   /games              {"preset":"classic"} or {"config":{"rows":4,"cols":4,"winTarget":2048},"seed":1}
  GET    /games/{id}
  POST   /games/{id}/moves   {"direction":"up"}
  DELETE /games/{id}
  GET    /games/{id}/ws      WebSocket, send {"direction":"left"}
  GET    /scores/{preset}    ?limit=10

Examples:
  t2048 web
  t2048 web --addr :9000 --log-level debug`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (default from settings, :8080)")
}

func runWeb(_ *cobra.Command, _ []string) {
	webSettings := settings.Web
	if flagWebAddr != "" {
		webSettings.Address = flagWebAddr
	}

	store, _ := openStore(true)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.New(store, logger.WithPrefix("t2048-web"), webSettings)
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
