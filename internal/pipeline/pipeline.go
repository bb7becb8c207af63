// Package pipeline merges crawl shards into the cleaned corpus through a
// fixed sequence of passes: merge, dedup, validate, rectify settings,
// nullify blanks, clean genres, clean authors, emit. The passes are
// deterministic, so re-running over the same shards reproduces the
// artifacts byte for byte.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/catalog"
	"github.com/shelfdata/bookharvest/internal/storage"
)

// CountryExtractor recognizes country names in free text.
type CountryExtractor interface {
	Countries(text string) []string
}

// Summary reports what one pipeline run did.
type Summary struct {
	Shards     int
	Merged     int
	Duplicates int
	Invalid    int
	Books      int
	Authors    int
	Genres     int
}

// Pipeline wires the shard store, the corpus writer, and the country
// extractor together.
type Pipeline struct {
	shards    *storage.ShardStore
	corpus    *storage.CorpusWriter
	extractor CountryExtractor
	logger    *zap.Logger
}

// New builds a Pipeline.
func New(shards *storage.ShardStore, corpus *storage.CorpusWriter, extractor CountryExtractor, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{shards: shards, corpus: corpus, extractor: extractor, logger: logger}
}

// Run executes every pass in order and emits the corpus artifacts.
func (p *Pipeline) Run() (Summary, error) {
	var sum Summary

	merged, err := p.merge(&sum)
	if err != nil {
		return sum, err
	}

	books := Dedup(merged)
	sum.Duplicates = sum.Merged - len(books)
	p.logger.Info("deduplicated corpus", zap.Int("duplicates", sum.Duplicates))

	books = Validate(books)
	sum.Invalid = sum.Merged - sum.Duplicates - len(books)
	sum.Books = len(books)
	p.logger.Info("validated corpus",
		zap.Int("dropped", sum.Invalid),
		zap.Int("books", sum.Books))

	RectifySettings(books, p.extractor)
	NullifyBlanks(books)
	CleanGenres(books)
	CleanAuthors(books)

	authors := collectAuthors(books)
	genres := collectGenres(books)
	sum.Authors = len(authors)
	sum.Genres = len(genres)

	if err := p.corpus.WriteBooks(books); err != nil {
		return sum, err
	}
	if err := p.corpus.WriteAuthors(authors); err != nil {
		return sum, err
	}
	if err := p.corpus.WriteGenres(genres); err != nil {
		return sum, err
	}
	p.logger.Info("emitted corpus artifacts",
		zap.Int("books", sum.Books),
		zap.Int("authors", sum.Authors),
		zap.Int("genres", sum.Genres))

	return sum, nil
}

// merge concatenates every shard's records in lexicographic shard order.
// Later passes depend on this ordering staying fixed.
func (p *Pipeline) merge(sum *Summary) ([]catalog.BookRecord, error) {
	names, err := p.shards.List()
	if err != nil {
		return nil, err
	}
	sum.Shards = len(names)

	var merged []catalog.BookRecord
	for _, name := range names {
		books, err := p.shards.Load(name)
		if err != nil {
			return nil, fmt.Errorf("merge shard %s: %w", name, err)
		}
		merged = append(merged, books...)
	}
	sum.Merged = len(merged)
	p.logger.Info("merged shards",
		zap.Int("shards", sum.Shards),
		zap.Int("records", sum.Merged))
	return merged, nil
}
