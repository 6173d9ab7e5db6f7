// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/civic-analytics/catalog"
	"github.com/danielhkuo/civic-analytics/cliparse"
	"github.com/danielhkuo/civic-analytics/db"
	"github.com/danielhkuo/civic-analytics/handlers"
	"github.com/danielhkuo/civic-analytics/metrics"
	"github.com/danielhkuo/civic-analytics/middleware"
	"github.com/danielhkuo/civic-analytics/models"
	"github.com/danielhkuo/civic-analytics/remote"
	"github.com/danielhkuo/civic-analytics/router"
	"github.com/danielhkuo/civic-analytics/snapshot"
)

func main() {
	var err error

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Select the snapshot source
	var source snapshot.Source
	switch cfg.Source {
	case cliparse.SourceRemote:
		source = remote.NewClient(cfg.DataAPIURL, cfg.FetchTimeout)
		slog.Info("Using data API", "url", cfg.DataAPIURL)

	default:
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		store := db.NewStore(dbConn)
		if err := seedCatalog(store, cfg.CatalogFile); err != nil {
			slog.Error("catalog seeding failed", "error", err)
			os.Exit(1)
		}
		source = store
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Create router
	loader := snapshot.NewLoader(source, cfg.FetchTimeout, m)
	mux := router.NewRouter(handlers.NewStatsHandler(loader, m), registry)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "source", cfg.Source)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// seedCatalog stores the catalog from path, or the built-in one, when the database has none
func seedCatalog(store *db.Store, path string) error {
	var c models.Catalog
	if path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			return err
		}
		c = loaded
	} else {
		c = catalog.Default()
	}

	seeded, err := store.SeedCatalog(context.Background(), c)
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("Catalog seeded", "categories", len(c.Categories), "file", path)
	}
	return nil
}
