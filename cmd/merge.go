package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/pipeline"
	"github.com/shelfdata/bookharvest/internal/places"
	"github.com/shelfdata/bookharvest/internal/storage"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merges crawl shards into the normalized corpus",
		Long: `Reads every shard the crawl produced, deduplicates and cleans the
records, and writes the corpus artifacts: books.json, authors.json, and
genres.json. Rerunning over the same shards reproduces the same bytes.`,
		RunE: runMerge,
	}
}

func runMerge(_ *cobra.Command, _ []string) error {
	cfg, logger, err := initRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	zap.ReplaceGlobals(logger)

	shards, err := storage.NewShardStore(cfg.Paths.ShardsDir())
	if err != nil {
		return fmt.Errorf("init shard store: %w", err)
	}
	corpus, err := storage.NewCorpusWriter(cfg.Paths.CorpusDir())
	if err != nil {
		return fmt.Errorf("init corpus writer: %w", err)
	}

	pipe := pipeline.New(shards, corpus, places.NewGazetteer(), logger.Named("pipeline"))
	sum, err := pipe.Run()
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	logger.Info("merge finished",
		zap.Int("shards", sum.Shards),
		zap.Int("merged", sum.Merged),
		zap.Int("duplicates", sum.Duplicates),
		zap.Int("invalid", sum.Invalid),
		zap.Int("books", sum.Books),
		zap.Int("authors", sum.Authors),
		zap.Int("genres", sum.Genres))
	return nil
}
