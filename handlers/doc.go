// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the civic analytics API.

# Handler Types

StatsHandler serves every analytics view. It depends on a snapshot loader and
optional metrics:

	loader := snapshot.NewLoader(source, cfg.FetchTimeout, m)
	statsHandler := handlers.NewStatsHandler(loader, m)

# Views

	GET /stats/admin           → GetAdminStats (AdminReport)
	GET /stats/dashboard       → GetDashboard (PlatformTotals)
	GET /stats/candidates/{id} → GetCandidateStats (CandidateSupportReport)

Each request loads a fresh snapshot, so a view always reflects one point in
time. The admin view runs its aggregators concurrently over the same
read-only snapshot.

# Errors

A failed load never produces a partial report:

  - unknown candidate: 404
  - snapshot load timed out: 504
  - any other upstream failure: 502

Errors are written as models.ErrorResponse.
*/
package handlers
