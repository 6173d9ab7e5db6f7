// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores the civic platform data in PostgreSQL or SQLite and serves
it to the snapshot loader.

# Connecting

Open selects the driver by database type and pings the connection:

	conn, err := db.Open("sqlite", "file:civic.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes. The DDL and every query use $N placeholders and run
unchanged on both drivers.

# Tables

  - category: Questionnaire categories with their display position
  - category_question: Statements per category
  - voter: Voter profile
  - voter_preference: One rating per (voter, category, question); NULL when unanswered
  - candidate: Candidate profile, tier, and validation status
  - proposal: Proposals published by candidates
  - proposal_vote: One vote per voter per proposal

# Relationships

	category 1──* category_question
	voter 1──* voter_preference
	candidate 1──* proposal
	proposal 1──* proposal_vote

proposal_vote.voter_id is deliberately not a foreign key. Votes from voters
that no longer exist are still read; the analytics skip them.

# Reading

Store implements snapshot.Source. Lists are returned in creation order;
preferences are ordered by category and question; votes by cast time.
GetCandidate wraps snapshot.ErrNotFound for unknown ids.

# Writing

SaveCatalog, SeedCatalog, InsertVoter, InsertCandidate, InsertProposal, and
CastVote populate the database. Empty ids are replaced with random UUIDs.
CastVote returns ErrDuplicateVote on a repeated vote.
*/
package db
