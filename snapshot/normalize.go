// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/civic-analytics/models"
)

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New()

// Drop reasons reported to metrics
const (
	DropInvalidPreference   = "invalid_preference"
	DropDuplicatePreference = "duplicate_preference"
	DropEmptyVoterID        = "empty_voter_id"
)

type preferenceKey struct {
	category int
	question int
}

// normalize enforces the entity invariants the aggregators rely on.
// It runs once, before the snapshot is handed out.
func (l *Loader) normalize(snap *Snapshot) {
	drops := Normalize(snap)
	for reason, n := range drops {
		l.metrics.AddDropped(reason, n)
	}
}

// Normalize drops malformed preferences, duplicate (category, question)
// answers, and votes without a voter id, and replaces nil slices with empty
// ones. Returns the number of dropped records by reason.
func Normalize(snap *Snapshot) map[string]int {
	drops := make(map[string]int)

	if snap.Voters == nil {
		snap.Voters = []models.Voter{}
	}
	if snap.Candidates == nil {
		snap.Candidates = []models.Candidate{}
	}
	if snap.Proposals == nil {
		snap.Proposals = []models.Proposal{}
	}

	for i := range snap.Voters {
		v := &snap.Voters[i]
		seen := make(map[preferenceKey]struct{}, len(v.Preferences))
		kept := make([]models.Preference, 0, len(v.Preferences))

		for _, p := range v.Preferences {
			if err := validate.Struct(p); err != nil {
				drops[DropInvalidPreference]++
				continue
			}
			key := preferenceKey{category: p.CategoryID, question: p.QuestionIndex}
			if _, dup := seen[key]; dup {
				drops[DropDuplicatePreference]++
				continue
			}
			seen[key] = struct{}{}
			kept = append(kept, p)
		}
		v.Preferences = kept
	}

	for i := range snap.Proposals {
		p := &snap.Proposals[i]
		kept := make([]models.Vote, 0, len(p.Votes))
		for _, vote := range p.Votes {
			if vote.VoterID == "" {
				drops[DropEmptyVoterID]++
				continue
			}
			kept = append(kept, vote)
		}
		p.Votes = kept
	}

	for reason, n := range drops {
		slog.Warn("dropped records while normalizing snapshot", "reason", reason, "count", n)
	}

	return drops
}
