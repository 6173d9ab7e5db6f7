// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"log/slog"
	"sort"

	"github.com/danielhkuo/civic-analytics/models"
)

// AggregateCategoryScores sums every voter's ratings per resolved category name.
//
// The total is a sum, not a mean: a category with many lukewarm answers can
// outrank one with a few enthusiastic answers.
//
// Category numbers missing from the catalog are reported under FallbackLabel.
// Ratings outside 1..5 (including the zero "missing" value) are skipped.
// Rows come out in order of first contribution.
func AggregateCategoryScores(voters []models.Voter, catalog models.Catalog) []models.CategoryScore {
	idx := NewCategoryIndex(catalog)

	index := make(map[string]int)
	scores := make([]models.CategoryScore, 0)
	unresolved := make(map[int]int)
	skipped := 0

	for _, v := range voters {
		for _, p := range v.Preferences {
			if p.Rating < models.MinRating || p.Rating > models.MaxRating {
				skipped++
				continue
			}

			if _, ok := idx.Name(p.CategoryID); !ok {
				unresolved[p.CategoryID]++
			}
			name := idx.Label(p.CategoryID)

			i, seen := index[name]
			if !seen {
				i = len(scores)
				index[name] = i
				scores = append(scores, models.CategoryScore{Category: name})
			}
			scores[i].Total += p.Rating
		}
	}

	if len(unresolved) > 0 {
		ids := make([]int, 0, len(unresolved))
		for id := range unresolved {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		slog.Warn("preferences reference unknown categories", "category_ids", ids)
	}
	if skipped > 0 {
		slog.Warn("skipped malformed preferences", "count", skipped)
	}

	return scores
}
