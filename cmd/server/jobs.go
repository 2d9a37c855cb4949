// Package main provides the Margdarshak chat server entry point.
package main

import (
	"context"
	"time"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/config"
	"github.com/margdarshak/margdarshak-go/internal/logger"
	"github.com/margdarshak/margdarshak-go/internal/metrics"
)

// reloadCatalog periodically re-reads the regional catalog so the server
// serves fresh harvester output without a restart.
func reloadCatalog(ctx context.Context, cfg *config.Config, regional *catalog.Catalog, m *metrics.Metrics, log *logger.Logger) {
	ticker := time.NewTicker(cfg.CatalogReload)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Catalog reload stopped")
			return
		case <-ticker.C:
			performCatalogReload(cfg, regional, m, log)
		}
	}
}

// performCatalogReload executes one reload attempt. A missing or corrupt
// file keeps the catalog the server already has.
func performCatalogReload(cfg *config.Config, regional *catalog.Catalog, m *metrics.Metrics, log *logger.Logger) {
	colleges, err := catalog.LoadColleges(cfg.RegionalCatalogPath())
	if err != nil {
		log.WithError(err).Warn("Catalog reload failed, keeping current catalog")
		return
	}

	regional.Replace(colleges)
	m.SetCatalogSize(regional.Len())
	log.WithField("colleges", len(colleges)).Debug("Regional catalog reloaded")
}
