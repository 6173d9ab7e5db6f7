// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/danielhkuo/civic-analytics/analytics"
	"github.com/danielhkuo/civic-analytics/metrics"
	"github.com/danielhkuo/civic-analytics/middleware"
	"github.com/danielhkuo/civic-analytics/models"
	"github.com/danielhkuo/civic-analytics/snapshot"
)

// Loader produces snapshots for the stats endpoints
type Loader interface {
	LoadAdmin(ctx context.Context) (*snapshot.Snapshot, error)
	LoadCandidate(ctx context.Context, candidateID string) (*snapshot.Snapshot, error)
}

type StatsHandler struct {
	loader  Loader
	metrics *metrics.Metrics
}

// NewStatsHandler creates the stats handler. m may be nil.
func NewStatsHandler(loader Loader, m *metrics.Metrics) *StatsHandler {
	return &StatsHandler{loader: loader, metrics: m}
}

// GetAdminStats handles GET /stats/admin
// Recomputes demographics, category scores, and totals from a fresh snapshot
func (h *StatsHandler) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.LoadAdmin(r.Context())
	if err != nil {
		h.loadFailed(w, err, "admin")
		return
	}

	report := models.AdminReport{GeneratedAt: snap.FetchedAt}

	// The aggregators only read the snapshot and cannot fail
	var wg sync.WaitGroup
	wg.Go(func() {
		defer h.timed("demographics")()
		report.Demographics = analytics.AggregateDemographics(snap.Voters, snap.Candidates)
	})
	wg.Go(func() {
		defer h.timed("category_scores")()
		report.CategoryScores = analytics.AggregateCategoryScores(snap.Voters, snap.Catalog)
	})
	wg.Go(func() {
		defer h.timed("totals")()
		report.Totals = analytics.ComputeTotals(snap.Voters, snap.Candidates, snap.Proposals)
	})
	wg.Wait()

	middleware.JSONResponse(w, http.StatusOK, report)
}

// GetDashboard handles GET /stats/dashboard
func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.LoadAdmin(r.Context())
	if err != nil {
		h.loadFailed(w, err, "dashboard")
		return
	}

	done := h.timed("totals")
	totals := analytics.ComputeTotals(snap.Voters, snap.Candidates, snap.Proposals)
	done()

	middleware.JSONResponse(w, http.StatusOK, totals)
}

// GetCandidateStats handles GET /stats/candidates/{id}
func (h *StatsHandler) GetCandidateStats(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	snap, err := h.loader.LoadCandidate(r.Context(), candidateID)
	if err != nil {
		h.loadFailed(w, err, "candidate")
		return
	}

	done := h.timed("candidate_support")
	report := analytics.AnalyzeCandidate(*snap.Candidate, snap.Proposals, snap.Voters, snap.Catalog)
	done()

	middleware.JSONResponse(w, http.StatusOK, report)
}

// loadFailed maps snapshot errors to status codes.
// No partial report is ever written.
func (h *StatsHandler) loadFailed(w http.ResponseWriter, err error, view string) {
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error("snapshot load timed out", "view", view, "error", err)
		middleware.ErrorResponse(w, http.StatusGatewayTimeout, "Data source timed out")
	default:
		slog.Error("snapshot load failed", "view", view, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Data source unavailable")
	}
}

func (h *StatsHandler) timed(aggregator string) func() {
	start := time.Now()
	return func() {
		h.metrics.ObserveAggregate(aggregator, time.Since(start))
	}
}
