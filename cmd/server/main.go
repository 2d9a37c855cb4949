// Package main provides the Margdarshak chat server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/margdarshak/margdarshak-go/internal/backup"
	"github.com/margdarshak/margdarshak-go/internal/buildinfo"
	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/chat"
	"github.com/margdarshak/margdarshak-go/internal/config"
	"github.com/margdarshak/margdarshak-go/internal/logger"
	"github.com/margdarshak/margdarshak-go/internal/metrics"
	"github.com/margdarshak/margdarshak-go/internal/modules/admission"
	"github.com/margdarshak/margdarshak-go/internal/modules/college"
	"github.com/margdarshak/margdarshak-go/internal/modules/exam"
	"github.com/margdarshak/margdarshak-go/internal/modules/scholarship"
	"github.com/margdarshak/margdarshak-go/internal/search"
	"github.com/margdarshak/margdarshak-go/internal/sentry"
	"github.com/margdarshak/margdarshak-go/internal/translate"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting Margdarshak server")

	// Initialize error tracking (optional)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	}
	defer sentry.Flush(2 * time.Second)

	// Load the curated knowledge base. Without it the chatbot cannot
	// answer anything, so failure here is fatal.
	kb, err := catalog.LoadKnowledgeBase(cfg.KnowledgeBasePath())
	if err != nil {
		log.WithError(err).Error("Failed to load knowledge base")
		os.Exit(1)
	}
	log.WithField("path", cfg.KnowledgeBasePath()).Info("Knowledge base loaded")

	// Load the harvested regional catalog. A fresh deployment restores
	// it from the latest object-storage snapshot; when that also fails,
	// regional queries degrade to national answers, so failure only warns.
	regional := catalog.NewCatalog(nil)
	colleges, err := catalog.LoadColleges(cfg.RegionalCatalogPath())
	if err != nil && cfg.BackupEnabled() {
		log.WithError(err).Info("Regional catalog missing, restoring from snapshot")
		if restoreErr := restoreCatalog(cfg, log); restoreErr != nil {
			log.WithError(restoreErr).Warn("Snapshot restore failed")
		} else {
			colleges, err = catalog.LoadColleges(cfg.RegionalCatalogPath())
		}
	}
	if err != nil {
		log.WithError(err).Warn("Regional catalog unavailable, regional queries degrade to national answers")
	} else {
		regional.Replace(colleges)
		log.WithField("colleges", regional.Len()).Info("Regional catalog loaded")
	}

	// Create Prometheus registry with standard collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	m.SetCatalogSize(regional.Len())
	log.Info("Metrics initialized")

	// Register category handlers in classification priority order
	handlers := chat.NewRegistry()
	handlers.Register(college.NewHandler(kb, regional, log))
	handlers.Register(exam.NewHandler(kb, log))
	handlers.Register(scholarship.NewHandler(kb, log))
	handlers.Register(admission.NewHandler(kb, log))

	// External search collaborator (optional)
	var searcher chat.Searcher
	if cfg.SearchEnabled() {
		searcher = search.NewClient(cfg.GoogleAPIKey, cfg.GoogleSearchEngine, cfg.SearchTimeout, log)
		log.Info("External search enabled")
	} else {
		log.Info("Search credentials not configured, general queries fall back to apology")
	}

	resolver := chat.NewResolver(chat.ResolverOptions{
		KnowledgeBase:    kb,
		Registry:         handlers,
		History:          chat.NewHistory(cfg.HistoryLimit),
		Search:           searcher,
		Translate:        translate.NewClient(cfg.TranslateTimeout, log),
		Metrics:          m,
		Logger:           log,
		SearchTimeout:    cfg.SearchTimeout,
		TranslateTimeout: cfg.TranslateTimeout,
	})
	log.Info("Chat resolver created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, resolver, kb, regional, m, registry, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	// Regional catalog reload goroutine: picks up fresh harvester output
	// without a restart.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in catalog reload goroutine")
			}
		}()
		reloadCatalog(ctx, cfg, regional, m, log)
	}()

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	cancel()

	// Wait for goroutines to finish (with timeout)
	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}

// restoreCatalog pulls the latest catalog snapshot from object storage
// into the regional catalog path.
func restoreCatalog(cfg *config.Config, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := backup.NewStore(ctx, backup.Config{
		Endpoint:    cfg.BackupEndpoint,
		AccessKeyID: cfg.BackupAccessKey,
		SecretKey:   cfg.BackupSecretKey,
		Bucket:      cfg.BackupBucket,
	})
	if err != nil {
		return err
	}

	if err := backup.NewSnapshotter(store, cfg.BackupKey).Restore(ctx, cfg.RegionalCatalogPath()); err != nil {
		return err
	}
	log.WithField("key", cfg.BackupKey).Info("Regional catalog restored from snapshot")
	return nil
}
