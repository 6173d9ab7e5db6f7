// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the civic analytics API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(statsHandler, registry)

# Endpoints

Health:

	GET /health

Analytics (read-only, JSON):

	GET /stats/admin           - Demographics, category scores, and totals
	GET /stats/dashboard       - Platform totals only
	GET /stats/candidates/{id} - Support analytics for one candidate

Operations:

	GET /metrics - Prometheus exposition of the given gatherer

Every analytics request loads a fresh snapshot. Nothing is cached between
requests.
*/
package router
