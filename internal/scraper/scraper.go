package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/ufcstats/internal/dataset"
	"github.com/pfrederiksen/ufcstats/internal/document"
	"github.com/pfrederiksen/ufcstats/internal/fetch"
	"github.com/pfrederiksen/ufcstats/internal/logger"
)

const (
	CompletedEventsURL = "http://ufcstats.com/statistics/events/completed?page=all"
	DefaultMaxEvents   = 30
)

// Fetcher retrieves and parses one page.
type Fetcher interface {
	Document(ctx context.Context, url string) (*document.Document, error)
}

// Options configures a Scraper.
type Options struct {
	ListingURL string
	// MaxEvents limits how many events are processed. Zero or negative means all.
	MaxEvents int
}

// Scraper walks the completed-events listing and every linked event page.
type Scraper struct {
	fetcher    Fetcher
	listingURL string
	maxEvents  int
}

// New creates a Scraper. An empty ListingURL falls back to CompletedEventsURL.
func New(fetcher Fetcher, opts Options) *Scraper {
	if opts.ListingURL == "" {
		opts.ListingURL = CompletedEventsURL
	}
	return &Scraper{
		fetcher:    fetcher,
		listingURL: opts.ListingURL,
		maxEvents:  opts.MaxEvents,
	}
}

// Run fetches the listing page, then each event in listing order, and returns the
// collected records. Only a failure to fetch the listing is returned as an error;
// an event page that cannot be fetched is logged and skipped. If ctx is cancelled
// the records gathered so far are returned together with the context error.
func (s *Scraper) Run(ctx context.Context) (*dataset.Dataset, error) {
	logger.Info("Fetching event listing", logger.Fields{"url": s.listingURL})

	listing, err := s.fetcher.Document(ctx, s.listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetching event listing: %w", err)
	}

	urls := ExtractEventURLs(listing, s.maxEvents)
	logger.SetGauge("events.found", float64(len(urls)))
	logger.Info("Processing events", logger.Fields{"count": len(urls), "max_events": s.maxEvents})

	ds := dataset.New()
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return ds, fmt.Errorf("stopped after %d of %d events: %w", i, len(urls), err)
		}
		s.processEvent(ctx, ds, url)
	}

	return ds, nil
}

// processEvent adds one event and its fights to ds. Failures are logged, not returned.
func (s *Scraper) processEvent(ctx context.Context, ds *dataset.Dataset, url string) {
	logger.Info("Processing event", logger.Fields{"url": url})

	start := time.Now()
	doc, err := s.fetcher.Document(ctx, url)
	logger.RecordTiming("fetch.event", time.Since(start))
	if err != nil {
		logger.IncrCounter("events.failed")
		logger.Error("Event fetch failed, skipping", logger.Fields{
			"url":  url,
			"kind": fetch.KindOf(err).String(),
		}, err)
		return
	}
	logger.IncrCounter("events.fetched")

	evt := ExtractEvent(doc, url)
	ds.AddEvent(evt)
	logger.Info("Extracted event", logger.Fields{"name": evt.Name, "date": evt.Date})

	fights, err := ExtractFights(doc, evt.Name)
	if errors.Is(err, ErrNoFightTable) {
		logger.Warn("Fight table not found for event", logger.Fields{"event": evt.Name, "url": url})
		return
	}
	ds.AddFights(fights...)
}
