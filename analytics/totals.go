// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import "github.com/danielhkuo/civic-analytics/models"

// ComputeTotals counts the platform population for the dashboard
func ComputeTotals(voters []models.Voter, candidates []models.Candidate, proposals []models.Proposal) models.PlatformTotals {
	totals := models.PlatformTotals{
		Voters:     len(voters),
		Candidates: len(candidates),
		Proposals:  len(proposals),
		CandidatesByValidation: map[string]int{
			models.ValidationPending: 0,
			models.ValidationValid:   0,
			models.ValidationInvalid: 0,
		},
		CandidatesByTier: make(map[string]int),
	}

	for _, c := range candidates {
		status := c.Validation
		if status == "" {
			status = models.ValidationPending
		}
		totals.CandidatesByValidation[status]++
		if c.Tier != "" {
			totals.CandidatesByTier[c.Tier]++
		}
	}

	for _, p := range proposals {
		totals.Votes += len(p.Votes)
	}

	return totals
}
