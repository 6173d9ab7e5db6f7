// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - Source: Where snapshots come from, "db" (default) or "remote"
  - DatabaseURL: Connection string (required for the db source)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DataAPIURL: Base URL of the data API (required for the remote source)
  - CatalogFile: Optional catalog YAML used to seed an empty database
  - FetchTimeout: Upper bound on one snapshot load (default: 10s)

# CLI Flags

	-p        Server port
	-d        Database URL
	-t        Database type
	-source   Data source
	-api      Data API URL
	-catalog  Catalog file
	-timeout  Fetch timeout (Go duration, e.g. 5s)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	SOURCE        → -source
	DATA_API_URL  → -api
	CATALOG_FILE  → -catalog
	FETCH_TIMEOUT → -timeout

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file into the environment first; variables that are already set win.

# Validation

ParseFlags returns an error if:

  - the db source has no DATABASE_URL or an unknown DATABASE_TYPE
  - the remote source has no DATA_API_URL
  - PORT or FETCH_TIMEOUT cannot be parsed
*/
package cliparse
