// Package dispatcher enumerates the crawl's task universe and drives it
// strictly sequentially. One task's fan-out, shard write, and ledger write
// all finish before the next task starts; that ordering is what keeps the
// whole-document ledger update race-free.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/catalog"
	"github.com/shelfdata/bookharvest/internal/extract"
	"github.com/shelfdata/bookharvest/internal/fetch"
	"github.com/shelfdata/bookharvest/internal/shelf"
)

// ErrNotAuthenticated means the session probe came back without the
// signed-in marker. This is the one error that halts the whole crawl.
var ErrNotAuthenticated = errors.New("session not authenticated")

// TaskRunner executes one task.
type TaskRunner interface {
	Run(ctx context.Context, task catalog.Task) shelf.Outcome
}

// Options describe the task universe and the session probe.
type Options struct {
	BaseURL          *url.URL
	Cookie           string
	Categories       []string
	PagesPerCategory int
	// YearStart..YearEnd add one category per year, inclusive. YearEnd
	// zero disables the range.
	YearStart int
	YearEnd   int
	// Marker must appear in the probe response for the session to count
	// as signed in.
	Marker        string
	ProbeCategory string
}

// Summary tallies one crawl run.
type Summary struct {
	Tasks     int
	Completed int
	Skipped   int
	Aborted   int
	// Books counts the records persisted on disk after the run, including
	// those already present under skipped tasks.
	Books int
}

// Dispatcher owns the crawl loop.
type Dispatcher struct {
	opts   Options
	getter fetch.Getter
	runner TaskRunner
	logger *zap.Logger
}

// New wires a Dispatcher.
func New(opts Options, getter fetch.Getter, runner TaskRunner, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{opts: opts, getter: getter, runner: runner, logger: logger}
}

// Tasks enumerates every (category, page) pair: the configured categories
// in order, then one category per year, each crossed with pages
// 1..PagesPerCategory.
func (d *Dispatcher) Tasks() []catalog.Task {
	cats := make([]string, 0, len(d.opts.Categories))
	cats = append(cats, d.opts.Categories...)
	if d.opts.YearEnd != 0 {
		for y := d.opts.YearStart; y <= d.opts.YearEnd; y++ {
			cats = append(cats, strconv.Itoa(y))
		}
	}

	tasks := make([]catalog.Task, 0, len(cats)*d.opts.PagesPerCategory)
	for _, cat := range cats {
		for page := 1; page <= d.opts.PagesPerCategory; page++ {
			tasks = append(tasks, catalog.Task{Category: cat, Page: page})
		}
	}
	return tasks
}

// VerifyAuth fetches the probe listing page and checks it for the
// signed-in marker.
func (d *Dispatcher) VerifyAuth(ctx context.Context) error {
	probe := catalog.Task{Category: d.opts.ProbeCategory, Page: 1}
	resp, err := d.getter.Get(ctx, shelf.ListingURL(d.opts.BaseURL, probe), d.headers())
	if err != nil {
		return fmt.Errorf("auth probe: %w", err)
	}
	if !extract.HasMarker(resp.Body, d.opts.Marker) {
		return ErrNotAuthenticated
	}
	d.logger.Info("session verified", zap.String("probe", probe.Key()))
	return nil
}

// Run verifies the session, then executes every task in order. Aborted
// tasks are tallied and the crawl moves on; only authentication failure
// and context cancellation stop it.
func (d *Dispatcher) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	if err := d.VerifyAuth(ctx); err != nil {
		return sum, err
	}

	tasks := d.Tasks()
	sum.Tasks = len(tasks)
	d.logger.Info("crawl starting", zap.Int("tasks", sum.Tasks))

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			d.logger.Warn("crawl interrupted",
				zap.String("next_task", task.Key()),
				zap.Error(err))
			return sum, err
		}
		switch out := d.runner.Run(ctx, task); out.Status {
		case shelf.StatusCompleted:
			sum.Completed++
			sum.Books += out.Scraped
		case shelf.StatusSkipped:
			sum.Skipped++
			sum.Books += out.Scraped
		case shelf.StatusAborted:
			sum.Aborted++
		}
	}

	d.logger.Info("crawl finished",
		zap.Int("completed", sum.Completed),
		zap.Int("skipped", sum.Skipped),
		zap.Int("aborted", sum.Aborted),
		zap.Int("books", sum.Books))
	return sum, nil
}

func (d *Dispatcher) headers() http.Header {
	h := make(http.Header)
	if d.opts.Cookie != "" {
		h.Set("Cookie", d.opts.Cookie)
	}
	return h
}
