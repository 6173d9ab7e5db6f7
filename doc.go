// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the civic analytics API server.

The server reads voters, candidates, proposals, and the questionnaire catalog
from a civic participation platform and computes the administrator view and
per-candidate support analytics on demand.

# Starting the Server

With a local SQLite database (the default source):

	DATABASE_URL=file:civic.db go run .

Against the platform's data API:

	SOURCE=remote DATA_API_URL=http://localhost:4000 go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first when present.

# Configuration

  - SOURCE (-source): "db" (default) or "remote"
  - DATABASE_URL (-d): Connection string, required for the db source
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATA_API_URL (-api): Base URL, required for the remote source
  - CATALOG_FILE (-catalog): Catalog YAML seeded into an empty database
  - FETCH_TIMEOUT (-timeout): Snapshot load bound (default: 10s)
  - PORT (-p): Server port (default: 3318)

# Architecture

  - analytics: Pure aggregation over a snapshot
  - snapshot: Concurrent snapshot loading and normalization
  - db: SQL storage implementing the snapshot source
  - remote: HTTP client implementing the snapshot source
  - catalog: Built-in and file-based questionnaire catalogs
  - handlers: HTTP request handlers for the stats views
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - metrics: Prometheus collectors
  - models: Entity and report types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
