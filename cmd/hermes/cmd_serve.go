package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hermes/jpql/parser"
	"github.com/dhamidi/hermes/server"
)

func newServeCmd() *cobra.Command {
	cfg := server.DefaultConfig()
	var versionName string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve parsing and content assist over HTTP and websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parser.ParseVersion(versionName)
			if err != nil {
				return err
			}
			cfg.Version = v

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "number of parsed queries to keep")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace period for open requests")
	cmd.Flags().StringSliceVar(&cfg.OriginPatterns, "allow-origin", nil, "additional origin host pattern allowed to open the assist websocket")
	addVersionFlag(cmd, &versionName)

	return cmd
}
