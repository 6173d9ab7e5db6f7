// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /stats/admin", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
duration_ms). Completions with a 5xx status are logged at WARN.

# CORS Middleware

Enable cross-origin reads for the dashboards:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET and OPTIONS with headers Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadGateway, "message")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
