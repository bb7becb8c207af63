// Package cmd defines the CLI commands for the bookharvest executable.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/config"
	"github.com/shelfdata/bookharvest/internal/logging"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookharvest",
		Short: "A resumable book-catalog harvester.",
		Long: `bookharvest walks a book catalog's shelf listings, harvests one record
per book with per-field fault isolation, and merges the resulting shards
into a deduplicated, normalized corpus.

Crawls are resumable: progress is tracked in a ledger and completed
shelf pages are skipped on the next run.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults apply when omitted)")

	cmd.AddCommand(newCrawlCmd())
	cmd.AddCommand(newMergeCmd())

	return cmd
}

// initRuntime loads configuration and builds the process logger. Every
// subcommand starts here.
func initRuntime() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// Execute runs the root command with a signal-aware context so an
// interrupted crawl stops at the next safe point.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
