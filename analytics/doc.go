// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package analytics derives platform and candidate statistics from a snapshot.

Every function here is a pure reduction over its arguments: nothing is
fetched, stored, or mutated, so independent aggregations can run in parallel
over the same snapshot without locking.

# Administrator View

	demo := analytics.AggregateDemographics(voters, candidates)
	scores := analytics.AggregateCategoryScores(voters, catalog)
	totals := analytics.ComputeTotals(voters, candidates, proposals)

AggregateDemographics buckets by literal age (ascending) and by city
(descending count, ties in first-seen order). AggregateCategoryScores sums
ratings per category name. It is a sum, not a mean.

# Candidate View

	report := analytics.AnalyzeCandidate(candidate, proposals, voters, catalog)

The report carries:

  - votesByCategory: raw vote records per category, nonzero, descending
  - supportRatio: unique supporters / voters, clamped to [0, 1]
  - ageHistogram, locationHistogram: supporter demographics
  - totalVoters, uniqueSupporters, totalProposals, engagedProposalCount
  - hasData: false when nobody supports the candidate yet

# Catalog Resolution

Voter preferences reference categories by number; proposals reference them
by name. CategoryIndex maps between the two and supplies FallbackLabel for
numbers the catalog does not know.

# Data Quality

Irregular records never abort a computation. Missing cities, regions, and
ages fall back to placeholders, unknown categories get a fallback label,
out-of-range ratings are skipped, and supporters missing from the voter
snapshot are excluded from histograms only. Each case is logged with slog.
*/
package analytics
