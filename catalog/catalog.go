// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/civic-analytics/models"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed default.yaml
var defaultYAML []byte

var validate = validator.New()

// Default returns the built-in questionnaire taxonomy
func Default() models.Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		// The embedded file is part of the build
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads and validates a catalog YAML file
func Load(path string) (models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
// Category numbers must be positive and unique, names non-empty and unique.
func Parse(data []byte) (models.Catalog, error) {
	var c models.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return models.Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := Validate(c); err != nil {
		return models.Catalog{}, err
	}
	return c, nil
}

// Validate checks a catalog regardless of where it came from
func Validate(c models.Catalog) error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	numbers := make(map[int]struct{}, len(c.Categories))
	names := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if _, dup := numbers[cat.Number]; dup {
			return fmt.Errorf("%w: duplicate category number %d", ErrInvalidCatalog, cat.Number)
		}
		if _, dup := names[cat.Name]; dup {
			return fmt.Errorf("%w: duplicate category name %q", ErrInvalidCatalog, cat.Name)
		}
		numbers[cat.Number] = struct{}{}
		names[cat.Name] = struct{}{}
	}

	return nil
}
