// Package shelf executes one crawl task: resolve the book-URL frontier for
// a listing page, fan out book fetches under bounded concurrency, persist
// the shard, and update the ledger.
package shelf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shelfdata/bookharvest/internal/catalog"
	"github.com/shelfdata/bookharvest/internal/extract"
	"github.com/shelfdata/bookharvest/internal/fetch"
	"github.com/shelfdata/bookharvest/internal/ledger"
	"github.com/shelfdata/bookharvest/internal/progress"
	"github.com/shelfdata/bookharvest/internal/storage"
)

// Status is how a task run ended.
type Status string

// Task outcomes. Skipped tasks did no network work at all; aborted tasks
// leave the ledger untouched so a later resume retries them.
const (
	StatusSkipped   Status = "skipped"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// Outcome reports one task run.
type Outcome struct {
	Status   Status
	Scraped  int
	Expected int
}

// BookFetcher resolves one book URL into a record, absent on any failure.
type BookFetcher interface {
	Fetch(ctx context.Context, url string) (*catalog.BookRecord, fetch.Stats)
}

// Options configure task execution.
type Options struct {
	BaseURL *url.URL
	// Cookie is sent on listing fetches; book pages are public.
	Cookie  string
	Workers int
	// Resume allows skipping tasks whose shard and ledger entry already
	// meet Threshold.
	Resume            bool
	UseCachedFrontier bool
	Threshold         float64
	RunID             [16]byte
}

// Crawler runs tasks one at a time. The ledger is rewritten whole after
// each task, so callers must not run two tasks concurrently.
type Crawler struct {
	opts      Options
	getter    fetch.Getter
	books     BookFetcher
	frontiers *storage.FrontierStore
	shards    *storage.ShardStore
	ledger    *ledger.Ledger
	emitter   progress.Emitter
	logger    *zap.Logger
}

// New wires a task executor.
func New(opts Options, getter fetch.Getter, books BookFetcher, frontiers *storage.FrontierStore,
	shards *storage.ShardStore, led *ledger.Ledger, emitter progress.Emitter, logger *zap.Logger) *Crawler {
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Threshold == 0 {
		opts.Threshold = 1.0
	}
	if opts.RunID == ([16]byte{}) {
		opts.RunID = progress.UUIDToBytes(uuid.New())
	}
	if emitter == nil {
		emitter = progress.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{
		opts:      opts,
		getter:    getter,
		books:     books,
		frontiers: frontiers,
		shards:    shards,
		ledger:    led,
		emitter:   emitter,
		logger:    logger,
	}
}

// ListingURL builds the shelf listing URL for one task.
func ListingURL(base *url.URL, task catalog.Task) string {
	u := base.JoinPath("shelf", "show", task.Category)
	q := u.Query()
	q.Set("page", strconv.Itoa(task.Page))
	u.RawQuery = q.Encode()
	return u.String()
}

// Run executes one task end to end and reports how it went. Failures
// never propagate as errors: a task either completes, is skipped, or
// aborts with the cause logged.
func (c *Crawler) Run(ctx context.Context, task catalog.Task) Outcome {
	start := time.Now()
	key := task.Key()

	if c.opts.Resume && c.shards.Has(task) {
		if entry, ok := c.ledger.Get(key); ok && entry.Complete(c.opts.Threshold) {
			c.logger.Info("task skipped",
				zap.String("task", key),
				zap.Int("scraped", entry.Scraped),
				zap.Int("expected", entry.Expected))
			c.emit(progress.Event{
				Stage:    progress.StageTaskSkip,
				Category: task.Category,
				Page:     task.Page,
				Books:    int64(entry.Scraped),
				Expected: int64(entry.Expected),
			})
			return Outcome{Status: StatusSkipped, Scraped: entry.Scraped, Expected: entry.Expected}
		}
	}

	c.emit(progress.Event{Stage: progress.StageTaskStart, Category: task.Category, Page: task.Page})

	urls, err := c.frontier(ctx, task)
	if err != nil {
		return c.abort(task, start, fmt.Errorf("resolve frontier: %w", err))
	}

	records := c.fanOut(ctx, task, urls)
	if ctx.Err() != nil {
		return c.abort(task, start, ctx.Err())
	}

	if err := c.shards.Save(task, records); err != nil {
		return c.abort(task, start, fmt.Errorf("persist shard: %w", err))
	}
	c.ledger.Set(key, ledger.Entry{Scraped: len(records), Expected: len(urls)})
	if err := c.ledger.Save(); err != nil {
		return c.abort(task, start, fmt.Errorf("persist ledger: %w", err))
	}

	took := time.Since(start)
	c.logger.Info("task completed",
		zap.String("task", key),
		zap.Int("scraped", len(records)),
		zap.Int("expected", len(urls)),
		zap.Duration("took", took))
	c.emit(progress.Event{
		Stage:    progress.StageTaskDone,
		Category: task.Category,
		Page:     task.Page,
		Books:    int64(len(records)),
		Expected: int64(len(urls)),
		Dur:      took,
	})
	return Outcome{Status: StatusCompleted, Scraped: len(records), Expected: len(urls)}
}

// frontier returns the task's book URLs, from the frontier cache when
// enabled, otherwise from a listing fetch. A fetched frontier is persisted
// before any book work starts.
func (c *Crawler) frontier(ctx context.Context, task catalog.Task) ([]string, error) {
	if c.opts.UseCachedFrontier {
		urls, err := c.frontiers.Load(task)
		switch {
		case err == nil:
			return urls, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	resp, err := c.getter.Get(ctx, ListingURL(c.opts.BaseURL, task), c.authHeaders())
	if err != nil {
		return nil, err
	}
	doc, err := extract.Document(resp.Body)
	if err != nil {
		return nil, err
	}
	urls := extract.BookURLs(doc, c.opts.BaseURL)
	if err := c.frontiers.Save(task, urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// fanOut fetches every frontier URL under the worker limit and returns the
// present records in frontier order.
func (c *Crawler) fanOut(ctx context.Context, task catalog.Task, urls []string) []catalog.BookRecord {
	slots := make([]*catalog.BookRecord, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, bookURL := range urls {
		i, bookURL := i, bookURL
		g.Go(func() error {
			rec, stats := c.books.Fetch(gctx, bookURL)
			slots[i] = rec
			c.emitBook(task, bookURL, rec, stats)
			return nil
		})
	}
	_ = g.Wait()

	records := make([]catalog.BookRecord, 0, len(urls))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

func (c *Crawler) abort(task catalog.Task, start time.Time, err error) Outcome {
	c.logger.Error("task aborted",
		zap.String("task", task.Key()),
		zap.Error(err))
	c.emit(progress.Event{
		Stage:    progress.StageTaskAbort,
		Category: task.Category,
		Page:     task.Page,
		Dur:      time.Since(start),
		Note:     err.Error(),
	})
	return Outcome{Status: StatusAborted}
}

func (c *Crawler) authHeaders() http.Header {
	h := make(http.Header)
	if c.opts.Cookie != "" {
		h.Set("Cookie", c.opts.Cookie)
	}
	return h
}

func (c *Crawler) emitBook(task catalog.Task, bookURL string, rec *catalog.BookRecord, stats fetch.Stats) {
	evt := progress.Event{
		Category: task.Category,
		Page:     task.Page,
		URL:      bookURL,
		Bytes:    stats.Bytes,
		Dur:      stats.Duration,
	}
	if rec == nil {
		evt.Stage = progress.StageBookDrop
	} else {
		evt.Stage = progress.StageBookDone
		if stats.FromCache {
			evt.StatusClass = progress.StatusCache
		} else {
			evt.StatusClass = progress.ClassifyStatus(stats.StatusCode)
		}
	}
	c.emit(evt)
}

func (c *Crawler) emit(evt progress.Event) {
	evt.RunID = c.opts.RunID
	evt.TS = time.Now().UTC()
	c.emitter.Emit(evt)
}
