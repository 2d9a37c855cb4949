// Command harvester fetches college records from every configured source,
// reconciles them into the regional catalog, and writes the catalog file
// the chat server serves from. Run it on a schedule (cron, CI job) so the
// server always has fresh data to reload.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/margdarshak/margdarshak-go/internal/backup"
	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/config"
	"github.com/margdarshak/margdarshak-go/internal/harvest"
	"github.com/margdarshak/margdarshak-go/internal/logger"
	"github.com/margdarshak/margdarshak-go/internal/metrics"
	"github.com/margdarshak/margdarshak-go/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// CLI flags
var (
	noCacheFlag = flag.Bool("no-cache", false, "Bypass the per-source batch cache and fetch everything fresh")
	outputFlag  = flag.String("output", "", "Catalog output path (default: configured regional catalog path)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting harvester")

	// Per-source batch cache: a rerun within the TTL reuses cached batches
	// instead of hammering the sources again.
	var cache *storage.Cache
	if !*noCacheFlag {
		cache, err = storage.New(cfg.CachePath(), cfg.CacheTTL)
		if err != nil {
			log.WithError(err).Warn("Failed to open harvest cache, fetching without cache")
		} else {
			defer func() { _ = cache.Close() }()
			if purged, err := cache.PurgeExpired(); err == nil && purged > 0 {
				log.WithField("purged", purged).Debug("Expired cache batches removed")
			}
		}
	}

	m := metrics.New(prometheus.NewRegistry())

	harvester := harvest.NewHarvester(harvest.HarvesterOptions{
		Client:  harvest.NewClient(cfg.HarvestTimeout, cfg.HarvestMinDelay, cfg.HarvestMaxDelay, cfg.HarvestMaxRetries),
		Cache:   cache,
		Metrics: m,
		Logger:  log,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	startTime := time.Now()
	colleges, err := harvester.Run(ctx)
	if err != nil {
		log.WithError(err).Error("Harvest failed")
		fmt.Fprintf(os.Stderr, "❌ Harvest failed: %v\n", err)
		os.Exit(1)
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = cfg.RegionalCatalogPath()
	}

	if err := catalog.SaveColleges(outputPath, colleges); err != nil {
		log.WithError(err).Error("Failed to write catalog")
		fmt.Fprintf(os.Stderr, "❌ Failed to write catalog: %v\n", err)
		os.Exit(1)
	}
	log.WithField("colleges", len(colleges)).
		WithField("path", outputPath).
		Info("Catalog written")

	// Push a compressed snapshot to object storage when configured, so a
	// fresh deployment can restore the catalog without re-harvesting.
	if cfg.BackupEnabled() {
		if err := uploadSnapshot(ctx, cfg, outputPath, log); err != nil {
			log.WithError(err).Warn("Snapshot upload failed, catalog file is still written")
		}
	}

	duration := time.Since(startTime)
	log.WithField("duration", duration).Info("Harvest complete")
	fmt.Printf("✅ Harvest complete: %d colleges reconciled in %v\n", len(colleges), duration.Round(time.Second))
}

// uploadSnapshot compresses the catalog and uploads it to object storage.
func uploadSnapshot(ctx context.Context, cfg *config.Config, catalogPath string, log *logger.Logger) error {
	store, err := backup.NewStore(ctx, backup.Config{
		Endpoint:    cfg.BackupEndpoint,
		AccessKeyID: cfg.BackupAccessKey,
		SecretKey:   cfg.BackupSecretKey,
		Bucket:      cfg.BackupBucket,
	})
	if err != nil {
		return err
	}

	etag, err := backup.NewSnapshotter(store, cfg.BackupKey).Upload(ctx, catalogPath)
	if err != nil {
		return err
	}

	log.WithField("key", cfg.BackupKey).
		WithField("etag", etag).
		Info("Catalog snapshot uploaded")
	return nil
}
