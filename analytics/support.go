// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/danielhkuo/civic-analytics/models"
)

// categoryCounter tracks vote records per category name
type categoryCounter struct {
	Category string
	Votes    int
	Position int
}

// AnalyzeCandidate computes support analytics for one candidate.
//
// Only proposals owned by the candidate contribute votes. Supporters are a set:
// a voter voting on several proposals, or listed twice on one, counts once.
// Category counts are raw vote records and are not deduplicated.
//
// Supporters missing from voters stay in the totals but are left out of
// both histograms.
func AnalyzeCandidate(candidate models.Candidate, proposals []models.Proposal, voters []models.Voter, catalog models.Catalog) models.CandidateSupportReport {
	idx := NewCategoryIndex(catalog)

	// Every catalog category starts at zero
	counters := make(map[string]*categoryCounter)
	for i, name := range idx.Names() {
		counters[name] = &categoryCounter{Category: name, Position: i}
	}

	supporters := make(map[string]struct{})
	engaged := make(map[string]struct{})

	for _, p := range proposals {
		if p.CandidateID != candidate.ID || len(p.Votes) == 0 {
			continue
		}
		engaged[p.ID] = struct{}{}

		// Categories outside the catalog get a counter after the catalog ones
		counter, ok := counters[p.Category]
		if !ok {
			slog.Warn("proposal category not in catalog",
				"proposal_id", p.ID,
				"category", p.Category,
			)
			counter = &categoryCounter{Category: p.Category, Position: len(counters)}
			counters[p.Category] = counter
		}

		for _, vote := range p.Votes {
			counter.Votes++
			supporters[vote.VoterID] = struct{}{}
		}
	}

	ageHistogram, locationHistogram, resolved := supporterHistograms(supporters, voters)
	if missing := len(supporters) - resolved; missing > 0 {
		slog.Warn("supporters not found in voter snapshot",
			"candidate_id", candidate.ID,
			"count", missing,
		)
	}

	ratio := SupportRatio(len(supporters), len(voters))

	return models.CandidateSupportReport{
		CandidateID:          candidate.ID,
		VotesByCategory:      votesByCategory(counters),
		SupportRatio:         ratio,
		SupportPercentage:    math.Round(ratio*10000) / 100,
		AgeHistogram:         ageHistogram,
		LocationHistogram:    locationHistogram,
		TotalVoters:          len(voters),
		UniqueSupporters:     len(supporters),
		TotalProposals:       len(proposals),
		EngagedProposalCount: len(engaged),
		HasData:              len(supporters) > 0,
	}
}

// SupportRatio is supporters over population, clamped to [0, 1].
// A stale snapshot can hold more supporters than voters; that must never
// surface as more than 100%.
func SupportRatio(supporters, population int) float64 {
	if population <= 0 || supporters <= 0 {
		return 0
	}
	return math.Min(1.0, float64(supporters)/float64(population))
}

// votesByCategory keeps nonzero counters, descending by votes, ties in catalog order
func votesByCategory(counters map[string]*categoryCounter) []models.CategoryVotes {
	nonzero := make([]*categoryCounter, 0, len(counters))
	for _, c := range counters {
		if c.Votes > 0 {
			nonzero = append(nonzero, c)
		}
	}

	sort.Slice(nonzero, func(i, j int) bool {
		a, b := nonzero[i], nonzero[j]
		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Category < b.Category
	})

	out := make([]models.CategoryVotes, len(nonzero))
	for i, c := range nonzero {
		out[i] = models.CategoryVotes{Category: c.Category, Votes: c.Votes}
	}
	return out
}

// supporterHistograms buckets resolved supporters by age and "{city}, {region}".
// Returns how many supporters were found in voters.
func supporterHistograms(supporters map[string]struct{}, voters []models.Voter) ([]models.HistogramBucket, []models.HistogramBucket, int) {
	ages := make(map[int]int)
	unknownAge := 0

	locationIndex := make(map[string]int)
	locations := make([]models.HistogramBucket, 0)

	seen := make(map[string]struct{}, len(supporters))
	for _, v := range voters {
		if _, ok := supporters[v.ID]; !ok {
			continue
		}
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}

		if v.Age == nil {
			unknownAge++
		} else {
			ages[*v.Age]++
		}

		label := locationLabel(v.City, v.Region)
		i, ok := locationIndex[label]
		if !ok {
			i = len(locations)
			locationIndex[label] = i
			locations = append(locations, models.HistogramBucket{Name: label})
		}
		locations[i].Value++
	}

	ageBuckets := make([]models.HistogramBucket, 0, len(ages)+1)
	for age, count := range ages {
		a := age
		ageBuckets = append(ageBuckets, models.HistogramBucket{
			Name:  fmt.Sprintf("%d years", a),
			Value: count,
			Age:   &a,
		})
	}
	if unknownAge > 0 {
		ageBuckets = append(ageBuckets, models.HistogramBucket{Name: models.NoAge, Value: unknownAge})
	}

	sort.Slice(ageBuckets, func(i, j int) bool {
		a, b := ageBuckets[i], ageBuckets[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		// Missing age sorts after every concrete age
		if a.Age == nil || b.Age == nil {
			return b.Age == nil && a.Age != nil
		}
		return *a.Age < *b.Age
	})

	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].Value > locations[j].Value
	})

	return ageBuckets, locations, len(seen)
}

func locationLabel(city, region string) string {
	if city == "" {
		city = models.NoCity
	}
	if region == "" {
		region = models.NoRegion
	}
	return city + ", " + region
}
