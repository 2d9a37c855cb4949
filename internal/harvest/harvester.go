package harvest

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/logger"
	"github.com/margdarshak/margdarshak-go/internal/metrics"
	"github.com/margdarshak/margdarshak-go/internal/storage"
)

// Harvester fetches every source and reconciles the batches into one
// catalog. Fetches run concurrently; the merge is applied serially in
// fixed source order because field backfill is order-dependent.
type Harvester struct {
	client  *Client
	sources []Source
	apiBase string
	cache   *storage.Cache // nil disables caching
	metrics *metrics.Metrics
	log     *logger.Logger
}

// HarvesterOptions configures a Harvester.
type HarvesterOptions struct {
	Client            *Client
	Sources           []Source // defaults to Sources()
	CollegeAPIBaseURL string   // defaults to DefaultCollegeAPIBaseURL
	Cache             *storage.Cache
	Metrics           *metrics.Metrics
	Logger            *logger.Logger
}

// NewHarvester creates a harvester.
func NewHarvester(opts HarvesterOptions) *Harvester {
	sources := opts.Sources
	if sources == nil {
		sources = Sources()
	}
	apiBase := opts.CollegeAPIBaseURL
	if apiBase == "" {
		apiBase = DefaultCollegeAPIBaseURL
	}

	return &Harvester{
		client:  opts.Client,
		sources: sources,
		apiBase: apiBase,
		cache:   opts.Cache,
		metrics: opts.Metrics,
		log:     opts.Logger.WithModule("harvester"),
	}
}

// Run fetches all sources and returns the reconciled catalog. A failing
// source contributes an empty batch; Run fails only when every source
// failed.
func (h *Harvester) Run(ctx context.Context) ([]catalog.College, error) {
	batches := make([][]catalog.College, len(h.sources)+1)
	failures := make([]error, len(h.sources)+1)

	g, gctx := errgroup.WithContext(ctx)

	for i, source := range h.sources {
		i, source := i, source
		g.Go(func() error {
			batch, err := h.fetchHTMLSource(gctx, source)
			if err != nil {
				h.log.WithError(err).Warnf("source %s failed, continuing without it", source.Name)
				failures[i] = err
				return nil
			}
			batches[i] = batch
			return nil
		})
	}

	g.Go(func() error {
		batch, err := h.fetchAPISource(gctx)
		if err != nil {
			h.log.WithError(err).Warnf("source %s failed, continuing without it", CollegeAPIName)
			failures[len(h.sources)] = err
			return nil
		}
		batches[len(h.sources)] = batch
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, err := range failures {
		if err != nil {
			failed++
		}
	}
	if failed == len(failures) {
		return nil, failures[0]
	}

	// Serial merge in source order: earlier sources win field conflicts.
	var merged []catalog.College
	for _, batch := range batches {
		merged = catalog.Reconcile(merged, batch)
	}

	h.log.Infof("harvested %d unique colleges from %d sources", len(merged), len(failures)-failed)
	return merged, nil
}

// fetchHTMLSource returns a source's batch, from the cache when fresh.
func (h *Harvester) fetchHTMLSource(ctx context.Context, source Source) ([]catalog.College, error) {
	if cached, ok := h.lookupCache(source.Name); ok {
		return cached, nil
	}

	start := time.Now()
	doc, err := h.client.GetDocument(ctx, source.URL)
	if err != nil {
		h.metrics.RecordHarvestRequest(source.Name, "error", time.Since(start).Seconds())
		return nil, err
	}

	batch := source.Parse(doc)
	h.metrics.RecordHarvestRequest(source.Name, "success", time.Since(start).Seconds())
	h.metrics.RecordHarvestRecords(source.Name, len(batch))
	h.log.Infof("found %d colleges from %s", len(batch), source.Name)

	h.storeCache(source.Name, batch)
	return batch, nil
}

// fetchAPISource returns the collegeAPI batch, from the cache when fresh.
func (h *Harvester) fetchAPISource(ctx context.Context) ([]catalog.College, error) {
	if cached, ok := h.lookupCache(CollegeAPIName); ok {
		return cached, nil
	}

	start := time.Now()
	batch, err := FetchCollegeAPI(ctx, h.client, h.apiBase)
	if err != nil {
		h.metrics.RecordHarvestRequest(CollegeAPIName, "error", time.Since(start).Seconds())
		return nil, err
	}

	h.metrics.RecordHarvestRequest(CollegeAPIName, "success", time.Since(start).Seconds())
	h.metrics.RecordHarvestRecords(CollegeAPIName, len(batch))
	h.log.Infof("found %d colleges from %s", len(batch), CollegeAPIName)

	h.storeCache(CollegeAPIName, batch)
	return batch, nil
}

func (h *Harvester) lookupCache(source string) ([]catalog.College, bool) {
	if h.cache == nil {
		return nil, false
	}

	batch, ok, err := h.cache.GetBatch(source)
	if err != nil {
		h.log.WithError(err).Warnf("cache lookup for %s failed", source)
		return nil, false
	}
	if !ok {
		h.metrics.RecordCacheMiss(source)
		return nil, false
	}

	h.metrics.RecordCacheHit(source)
	h.log.Infof("using cached batch for %s (%d colleges)", source, len(batch))
	return batch, true
}

func (h *Harvester) storeCache(source string, batch []catalog.College) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SaveBatch(source, batch); err != nil {
		h.log.WithError(err).Warnf("caching batch for %s failed", source)
	}
}
