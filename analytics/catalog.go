// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"fmt"

	"github.com/danielhkuo/civic-analytics/models"
)

// CategoryIndex resolves questionnaire category numbers to display names
type CategoryIndex struct {
	names map[int]string
	order []string
}

// NewCategoryIndex builds an index over the catalog.
// When two categories share a number the first one wins.
func NewCategoryIndex(catalog models.Catalog) *CategoryIndex {
	idx := &CategoryIndex{
		names: make(map[int]string, len(catalog.Categories)),
		order: make([]string, 0, len(catalog.Categories)),
	}
	listed := make(map[string]struct{}, len(catalog.Categories))

	for _, cat := range catalog.Categories {
		if _, seen := idx.names[cat.Number]; !seen {
			idx.names[cat.Number] = cat.Name
		}
		if _, seen := listed[cat.Name]; !seen {
			listed[cat.Name] = struct{}{}
			idx.order = append(idx.order, cat.Name)
		}
	}

	return idx
}

// Name returns the display name for a category number
func (ci *CategoryIndex) Name(number int) (string, bool) {
	name, ok := ci.names[number]
	return name, ok
}

// Label returns the display name, or a fallback label embedding the raw number
func (ci *CategoryIndex) Label(number int) string {
	if name, ok := ci.names[number]; ok {
		return name
	}
	return FallbackLabel(number)
}

// Names returns the distinct display names in catalog order
func (ci *CategoryIndex) Names() []string {
	out := make([]string, len(ci.order))
	copy(out, ci.order)
	return out
}

// FallbackLabel is the label used for category numbers missing from the catalog
func FallbackLabel(number int) string {
	return fmt.Sprintf("Category %d", number)
}
