// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import "github.com/danielhkuo/civic-analytics/models"

func intPtr(v int) *int { return &v }

func testCatalog() models.Catalog {
	return models.Catalog{Categories: []models.Category{
		{Number: 1, Name: "Economía", Questions: []string{"q1", "q2"}},
		{Number: 2, Name: "Salud", Questions: []string{"q1"}},
		{Number: 3, Name: "Educación", Questions: []string{"q1"}},
	}}
}

func votes(ids ...string) []models.Vote {
	out := make([]models.Vote, len(ids))
	for i, id := range ids {
		out[i] = models.Vote{VoterID: id}
	}
	return out
}
