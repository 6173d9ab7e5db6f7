// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/civic-analytics/handlers"
	"github.com/danielhkuo/civic-analytics/middleware"
)

func NewRouter(statsHandler *handlers.StatsHandler, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Analytics views, recomputed from a fresh snapshot on every request
	mux.HandleFunc("GET /stats/admin", middleware.WithLogging(statsHandler.GetAdminStats))
	mux.HandleFunc("GET /stats/dashboard", middleware.WithLogging(statsHandler.GetDashboard))
	mux.HandleFunc("GET /stats/candidates/{id}", middleware.WithLogging(statsHandler.GetCandidateStats))

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "no such endpoint")
			return
		}
		w.Write([]byte("civic-analytics API v1"))
	})

	return mux
}
