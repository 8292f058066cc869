package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alder-ui/alder/pkg/server"
	"github.com/alder-ui/alder/pkg/snapshot"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		frameMs  int
		maxConns int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start the demo server hosting the counter application.

Examples:
  alder-demo serve
  alder-demo serve --addr=:8080
  alder-demo serve --frame-ms=32`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, frameMs, maxConns)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":3000", "Address to listen on")
	cmd.Flags().IntVar(&frameMs, "frame-ms", 16, "Commit frame length in milliseconds")
	cmd.Flags().IntVar(&maxConns, "max-sessions", 0, "Maximum live sessions (0 = unlimited)")

	return cmd
}

func runServe(addr string, frameMs, maxConns int) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	srv := server.New(counterApp, &server.Config{
		Address:       addr,
		FrameInterval: time.Duration(frameMs) * time.Millisecond,
		MaxSessions:   maxConns,
	})
	srv.SetSnapshotStore(snapshot.NewMemoryStore())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting demo server", "addr", addr)
	return srv.ListenAndServe(ctx)
}
