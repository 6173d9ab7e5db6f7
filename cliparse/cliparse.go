// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data sources
const (
	SourceDB     = "db"
	SourceRemote = "remote"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	Source       string
	DataAPIURL   string
	CatalogFile  string
	FetchTimeout time.Duration
}

// LoadEnvFile loads variables from a .env file without overriding the
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fset := flag.NewFlagSet("civic-analytics", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", 0, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fset.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Data source
	fset.StringVar(&cfg.Source, "source", "", "Data source (db or remote)")
	fset.StringVar(&cfg.DataAPIURL, "api", "", "Base URL of the data API (remote source)")
	fset.StringVar(&cfg.CatalogFile, "catalog", "", "Catalog YAML used to seed the database")
	fset.DurationVar(&cfg.FetchTimeout, "timeout", 0, "Snapshot fetch timeout")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.FetchTimeout == 0 {
		if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil || d <= 0 {
				return Config{}, errors.New("invalid FETCH_TIMEOUT env variable")
			}
			cfg.FetchTimeout = d
		} else {
			cfg.FetchTimeout = 10 * time.Second
		}
	}

	if cfg.Source == "" {
		cfg.Source = os.Getenv("SOURCE")
		if cfg.Source == "" {
			cfg.Source = SourceDB
		}
	}
	if cfg.CatalogFile == "" {
		cfg.CatalogFile = os.Getenv("CATALOG_FILE")
	}

	switch cfg.Source {
	case SourceDB:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}

		if cfg.DatabaseType == "" {
			cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
			if cfg.DatabaseType == "" {
				cfg.DatabaseType = "sqlite"
			}
		}
		if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
			return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
		}

	case SourceRemote:
		if cfg.DataAPIURL == "" {
			cfg.DataAPIURL = os.Getenv("DATA_API_URL")
		}
		if cfg.DataAPIURL == "" {
			return Config{}, errors.New("data API URL required (use -api or DATA_API_URL env)")
		}

	default:
		return Config{}, fmt.Errorf("unknown source %q (want db or remote)", cfg.Source)
	}

	return cfg, nil
}
