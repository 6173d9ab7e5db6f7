// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines entity, catalog, and report types shared by the engine.

# Entity Types

Normalized, read-only records produced at the snapshot boundary:

  - Voter: age, location fields, rated questionnaire preferences
  - Preference: category_id, question_index (0-based), rating 1..5
  - Candidate: age, location fields, tier, validation status
  - Proposal: owning candidate, category name, vote records
  - Vote: voter_id (presence implies one vote)

# Catalog Types

  - Category: numero, nombre, preguntas
  - Catalog: ordered categories

The numeric category number is the join key for voter preferences; the
display name is the join key for proposals.

# Report Types

Derived and recomputed on every request. JSON field names are consumed
by the charting frontend and must not change:

  - DemographicsReport: ageDistribution, locationDistribution
  - CategoryScore: category, total
  - PlatformTotals: voters, candidates, proposals, votes
  - AdminReport: demographics, categoryScores, totals
  - CandidateSupportReport: votesByCategory, supportRatio, histograms, counts

# Constants

Tiers:

	TierPresident          = "presidente"
	TierGovernor           = "gobernador"
	TierMunicipalPresident = "presidente municipal"

Validation statuses:

	ValidationPending = "pending"
	ValidationValid   = "valid"
	ValidationInvalid = "invalid"

Placeholders:

	NoCity   = "no city"
	NoRegion = "no region"
	NoAge    = "no age"
*/
package models
