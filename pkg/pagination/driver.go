// Package pagination drives cursor-based page retrieval over a bounded
// worker pool.
//
// The admin API exposes no total page count; each page may reveal a next
// cursor via the Link header. The driver therefore works in waves: every
// queued URL is dispatched across the pool, completed pages are handed to
// the sink immediately, and any discovered cursors form the next wave.
// The run ends when a wave surfaces no further cursors.
package pagination

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saachistyle/shop-reports/pkg/shopify"
)

// Fetcher fetches a single order page and reports the next cursor, if any.
type Fetcher interface {
	FetchOrders(ctx context.Context, pageURL string, params url.Values) ([]shopify.Order, string, error)
}

// Sink receives completed pages. Ingest is called concurrently from
// multiple workers and must be safe for that.
type Sink interface {
	Ingest(orders []shopify.Order)
}

// Config holds driver configuration.
type Config struct {
	// MaxConcurrency is the maximum number of in-flight page fetches.
	MaxConcurrency int
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 10,
	}
}

// Driver fans page fetches out over a worker pool and requeues cursors.
type Driver struct {
	fetcher Fetcher
	sink    Sink
	config  Config
	logger  zerolog.Logger
}

// NewDriver creates a new pagination driver.
func NewDriver(fetcher Fetcher, sink Sink, cfg Config) *Driver {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 10
	}
	return &Driver{
		fetcher: fetcher,
		sink:    sink,
		config:  cfg,
		logger:  log.With().Str("component", "pagination").Logger(),
	}
}

type pageResult struct {
	orders []shopify.Order
	next   string
}

// Run fetches every page reachable from startURL and feeds each completed
// page to the sink. params applies to the seed request only; cursor URLs
// are self-contained per platform convention.
//
// A failed page is logged and dropped; the run always continues to
// completion. Pages from different chains complete in arbitrary order.
func (d *Driver) Run(ctx context.Context, startURL string, params url.Values) {
	start := time.Now()
	frontier := []string{startURL}
	pagesFetched := 0
	wave := 0

	for len(frontier) > 0 {
		wave++

		urls := make(chan string, len(frontier))
		results := make(chan pageResult, len(frontier))
		for _, pageURL := range frontier {
			urls <- pageURL
		}
		close(urls)

		workers := d.config.MaxConcurrency
		if len(frontier) < workers {
			workers = len(frontier)
		}

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go d.worker(ctx, urls, params, results, &wg, i)
		}
		go func() {
			wg.Wait()
			close(results)
		}()

		frontier = frontier[:0]
		for res := range results {
			d.sink.Ingest(res.orders)
			pagesFetched++
			if res.next != "" {
				frontier = append(frontier, res.next)
			}
		}

		// Cursor URLs carry their own query; the seed params must not leak
		// into follow-up waves.
		params = nil

		d.logger.Debug().
			Int("wave", wave).
			Int("pages", pagesFetched).
			Int("queued", len(frontier)).
			Msg("Wave complete")
	}

	d.logger.Info().
		Int("pages", pagesFetched).
		Int("waves", wave).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")
}

// worker processes page URLs from the queue.
func (d *Driver) worker(ctx context.Context, urls <-chan string, params url.Values, results chan<- pageResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for pageURL := range urls {
		select {
		case <-ctx.Done():
			d.logger.Debug().
				Int("worker_id", workerID).
				Msg("Worker stopping (context cancelled)")
			return
		default:
		}

		orders, next, err := d.fetcher.FetchOrders(ctx, pageURL, params)
		if err != nil {
			d.logger.Warn().
				Err(err).
				Int("worker_id", workerID).
				Str("url", pageURL).
				Msg("Page fetch failed, orders dropped")
			continue
		}

		results <- pageResult{orders: orders, next: next}
	}
}
