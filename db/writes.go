// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/civic-analytics/catalog"
	"github.com/danielhkuo/civic-analytics/models"
)

// ErrDuplicateVote is returned when a voter has already voted for a proposal
var ErrDuplicateVote = errors.New("voter already voted for this proposal")

// SaveCatalog replaces the stored catalog inside one transaction
func (s *Store) SaveCatalog(ctx context.Context, c models.Catalog) error {
	if err := catalog.Validate(c); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_question`); err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM category`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	for pos, cat := range c.Categories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO category (numero, nombre, position) VALUES ($1, $2, $3)
		`, cat.Number, cat.Name, pos)
		if err != nil {
			return fmt.Errorf("failed to insert category %d: %w", cat.Number, err)
		}

		for i, q := range cat.Questions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO category_question (category_numero, position, text) VALUES ($1, $2, $3)
			`, cat.Number, i, q)
			if err != nil {
				return fmt.Errorf("failed to insert question %d of category %d: %w", i, cat.Number, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// SeedCatalog stores c only when no catalog exists yet.
// Reports whether anything was written.
func (s *Store) SeedCatalog(ctx context.Context, c models.Catalog) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM category`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := s.SaveCatalog(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}

// InsertVoter stores a voter and their answers. A missing ID is generated.
// Answers with rating 0 are stored as unanswered.
func (s *Store) InsertVoter(ctx context.Context, v models.Voter) (string, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO voter (id, first_name, last_name, age, postal_code, district, city, region, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, v.ID, v.FirstName, v.LastName, nullInt(v.Age), v.PostalCode, v.District, v.City, v.Region, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert voter: %w", err)
	}

	for _, p := range v.Preferences {
		var rating any
		if p.Rating != 0 {
			rating = p.Rating
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO voter_preference (voter_id, category_id, question_index, rating)
			VALUES ($1, $2, $3, $4)
		`, v.ID, p.CategoryID, p.QuestionIndex, rating)
		if err != nil {
			return "", fmt.Errorf("failed to insert preference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit voter: %w", err)
	}
	return v.ID, nil
}

// InsertCandidate stores a candidate. Validation defaults to pending.
func (s *Store) InsertCandidate(ctx context.Context, c models.Candidate) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Validation == "" {
		c.Validation = models.ValidationPending
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidate (id, first_name, last_name, age, postal_code, district, city, region, tier, validation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, c.ID, c.FirstName, c.LastName, nullInt(c.Age), c.PostalCode, c.District, c.City, c.Region,
		c.Tier, c.Validation, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert candidate: %w", err)
	}
	return c.ID, nil
}

// InsertProposal stores a proposal without its votes; use CastVote for those
func (s *Store) InsertProposal(ctx context.Context, p models.Proposal) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO proposal (id, candidate_id, title, description, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.CandidateID, p.Title, p.Description, p.Category, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert proposal: %w", err)
	}
	return p.ID, nil
}

// CastVote records one vote. A second vote by the same voter returns ErrDuplicateVote.
func (s *Store) CastVote(ctx context.Context, proposalID, voterID string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO proposal_vote (proposal_id, voter_id, cast_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (proposal_id, voter_id) DO NOTHING
	`, proposalID, voterID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check vote: %w", err)
	}
	if n == 0 {
		return ErrDuplicateVote
	}
	return nil
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
