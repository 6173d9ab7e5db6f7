// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is portable between PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Questionnaire catalog
CREATE TABLE IF NOT EXISTS category (
    numero INTEGER PRIMARY KEY CHECK (numero > 0),
    nombre TEXT NOT NULL UNIQUE,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS category_question (
    category_numero INTEGER NOT NULL REFERENCES category(numero) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (category_numero, position)
);

-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    age INTEGER,
    postal_code TEXT NOT NULL DEFAULT '',
    district TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    region TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_voter_created_at ON voter(created_at);

-- Voter questionnaire answers (rating NULL when unanswered)
CREATE TABLE IF NOT EXISTS voter_preference (
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    category_id INTEGER NOT NULL,
    question_index INTEGER NOT NULL,
    rating INTEGER,
    PRIMARY KEY (voter_id, category_id, question_index)
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    age INTEGER,
    postal_code TEXT NOT NULL DEFAULT '',
    district TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    region TEXT NOT NULL DEFAULT '',
    tier TEXT NOT NULL CHECK (tier IN ('presidente', 'gobernador', 'presidente municipal')),
    validation TEXT NOT NULL DEFAULT 'pending' CHECK (validation IN ('pending', 'valid', 'invalid')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_candidate_validation ON candidate(validation);

-- Proposals
CREATE TABLE IF NOT EXISTS proposal (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_proposal_candidate_id ON proposal(candidate_id);

-- Votes (one per voter per proposal; voter_id is not a foreign key so
-- snapshots can reference voters that were removed later)
CREATE TABLE IF NOT EXISTS proposal_vote (
    proposal_id TEXT NOT NULL REFERENCES proposal(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    cast_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (proposal_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_proposal_vote_voter_id ON proposal_vote(voter_id);
`
