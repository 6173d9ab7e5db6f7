// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package snapshot loads point-in-time copies of the data store for analytics.

# Sources

Source is the read contract implemented by the remote REST client and the
SQL store:

	ListVoters, ListCandidates, GetCandidate, ListProposals, GetCatalog

# Loading

	loader := snapshot.NewLoader(src, 10*time.Second, m)
	snap, err := loader.LoadAdmin(ctx)
	snap, err := loader.LoadCandidate(ctx, candidateID)

Fetches run concurrently under one timeout. The first failure cancels the
rest and fails the load; callers never see a partial snapshot. Retrying is
left to the Source.

# Normalization

Before a snapshot is returned, preferences with ratings outside 1..5 or
negative indices are dropped, a repeated (category, question) answer keeps
its first occurrence, and votes without a voter id are removed. Duplicate
voter ids inside a vote list are kept; the aggregators tolerate them.
*/
package snapshot
