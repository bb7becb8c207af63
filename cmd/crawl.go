package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/api"
	"github.com/shelfdata/bookharvest/internal/config"
	"github.com/shelfdata/bookharvest/internal/dispatcher"
	"github.com/shelfdata/bookharvest/internal/docstore"
	"github.com/shelfdata/bookharvest/internal/fetch"
	"github.com/shelfdata/bookharvest/internal/ledger"
	"github.com/shelfdata/bookharvest/internal/progress"
	"github.com/shelfdata/bookharvest/internal/progress/sinks"
	"github.com/shelfdata/bookharvest/internal/shelf"
	"github.com/shelfdata/bookharvest/internal/storage"
)

func newCrawlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Harvests book records shelf page by shelf page",
		Long: `Enumerates every configured category and year shelf, collects each
page's book URLs, and fetches one record per book. Completed pages are
recorded in the ledger and skipped when the crawl is rerun.`,
		RunE: runCrawl,
	}
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := initRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	zap.ReplaceGlobals(logger)

	base, err := url.Parse(cfg.Catalog.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}

	getter := fetch.NewClient(fetch.Options{
		UserAgent:     cfg.Crawler.UserAgent,
		Timeout:       cfg.Crawler.Timeout(),
		RespectRobots: !cfg.Crawler.IgnoreRobots,
		Delay:         cfg.Crawler.Delay(),
	})

	cache, err := docstore.NewDisk(cfg.Paths.DocsDir())
	if err != nil {
		return fmt.Errorf("init document cache: %w", err)
	}
	frontiers, err := storage.NewFrontierStore(cfg.Paths.FrontiersDir())
	if err != nil {
		return fmt.Errorf("init frontier store: %w", err)
	}
	shards, err := storage.NewShardStore(cfg.Paths.ShardsDir())
	if err != nil {
		return fmt.Errorf("init shard store: %w", err)
	}
	led, err := ledger.Load(cfg.Paths.LedgerFile())
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	runID := uuid.New()
	registry := prometheus.NewRegistry()
	promSink, err := sinks.NewPrometheusSink(registry)
	if err != nil {
		return fmt.Errorf("init prometheus sink: %w", err)
	}
	journal, err := sinks.NewJournalSink(filepath.Join(cfg.Paths.DataDir, "progress.jsonl"), logger.Named("journal"))
	if err != nil {
		return fmt.Errorf("init journal sink: %w", err)
	}
	hub := progress.NewHub(progress.Options{Logger: logger.Named("progress")},
		sinks.NewLogSink(logger.Named("progress")),
		promSink,
		journal,
	)

	books := fetch.NewBookFetcher(getter, cache, cfg.Crawler.UseCachedDocs, logger.Named("fetch"))
	runner := shelf.New(shelf.Options{
		BaseURL:           base,
		Cookie:            cfg.Auth.Cookie,
		Workers:           cfg.Crawler.WorkerCount(),
		Resume:            cfg.Crawler.Resume,
		UseCachedFrontier: cfg.Crawler.UseCachedFrontier,
		Threshold:         cfg.Crawler.CompletenessThreshold,
		RunID:             progress.UUIDToBytes(runID),
	}, getter, books, frontiers, shards, led, hub, logger.Named("shelf"))

	disp := dispatcher.New(dispatcher.Options{
		BaseURL:          base,
		Cookie:           cfg.Auth.Cookie,
		Categories:       cfg.Catalog.Categories,
		PagesPerCategory: cfg.Catalog.PagesPerCategory,
		YearStart:        cfg.Catalog.YearStart,
		YearEnd:          cfg.Catalog.YearEnd,
		Marker:           cfg.Auth.Marker,
		ProbeCategory:    cfg.Auth.ProbeCategory,
	}, getter, runner, logger.Named("dispatcher"))

	srv := startOpsServer(cfg, led, registry, logger)

	logger.Info("crawl run starting",
		zap.String("run_id", runID.String()),
		zap.Int("workers", cfg.Crawler.WorkerCount()),
		zap.Bool("resume", cfg.Crawler.Resume))

	_, runErr := disp.Run(cmd.Context())

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("ops server shutdown error", zap.Error(err))
		}
	}
	closeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := hub.Close(closeCtx); err != nil {
		logger.Warn("progress hub close error", zap.Error(err))
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("run crawl: %w", runErr)
	}
	return nil
}

// startOpsServer serves health probes, metrics, and the ledger view for the
// duration of the crawl. Returns nil when the listener is disabled.
func startOpsServer(cfg config.Config, led *ledger.Ledger, registry *prometheus.Registry, logger *zap.Logger) *http.Server {
	if !cfg.Ops.Enabled {
		return nil
	}

	ops := api.NewServer(led, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), logger.Named("api"))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Ops.Port),
		Handler:           ops.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("ops server started", zap.Int("port", cfg.Ops.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server error", zap.Error(err))
		}
	}()

	return srv
}
