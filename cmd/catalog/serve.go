package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/catalog"
	"github.com/jpalmerr/catalog/config"
	"github.com/spf13/cobra"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// serveCmd starts the catalog server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog server",
	Long: `Start the catalog server.

The server will:
  - Load configuration from the specified YAML file
  - Seed the catalog with the configured products
  - Serve the API and dashboard on the configured port

Changes live in memory only and are lost when the process exits.
The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  catalog serve -c config.yaml
  catalog serve --config /etc/catalog/config.yaml --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	serveCmd.Flags().Bool("debug", false, "log every catalog change")
	_ = serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	logger := newLogger(level)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"products", len(cfg.Products),
		"page_size", cfg.PageSize,
	)

	opts, err := config.Options(cfg)
	if err != nil {
		return fmt.Errorf("failed to build catalog options: %w", err)
	}
	opts = append(opts,
		catalog.WithLogger(logger),
		catalog.WithChangeCallback(func(ch catalog.Change) {
			logger.Info("catalog changed",
				"kind", string(ch.Kind),
				"product_id", ch.Product.ID,
				"index", ch.Index,
				"version", ch.Version,
			)
		}),
	)

	c, err := catalog.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- c.Start(ctx)
	}()

	shutdownTimeout := cfg.ShutdownTimeout.Duration()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
