// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/civic-analytics/models"
	"github.com/danielhkuo/civic-analytics/snapshot"
)

// Store reads snapshots from the SQL database. It implements snapshot.Source.
type Store struct {
	db *sql.DB
}

var _ snapshot.Source = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListVoters returns every voter with their preferences
func (s *Store) ListVoters(ctx context.Context) ([]models.Voter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, age, postal_code, district, city, region
		FROM voter
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := []models.Voter{}
	index := make(map[string]int)
	for rows.Next() {
		var v models.Voter
		var age sql.NullInt64
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &age,
			&v.PostalCode, &v.District, &v.City, &v.Region); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		v.Age = nullableInt(age)
		v.Preferences = []models.Preference{}
		index[v.ID] = len(voters)
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voters: %w", err)
	}

	prefs, err := s.db.QueryContext(ctx, `
		SELECT voter_id, category_id, question_index, rating
		FROM voter_preference
		ORDER BY voter_id, category_id, question_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer prefs.Close()

	for prefs.Next() {
		var voterID string
		var p models.Preference
		var rating sql.NullInt64
		if err := prefs.Scan(&voterID, &p.CategoryID, &p.QuestionIndex, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		if rating.Valid {
			p.Rating = int(rating.Int64)
		}

		i, ok := index[voterID]
		if !ok {
			continue
		}
		voters[i].Preferences = append(voters[i].Preferences, p)
	}

	return voters, prefs.Err()
}

// ListCandidates returns every candidate regardless of validation status
func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, age, postal_code, district, city, region, tier, validation
		FROM candidate
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

// GetCandidate returns one candidate or an error wrapping snapshot.ErrNotFound
func (s *Store) GetCandidate(ctx context.Context, id string) (models.Candidate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, age, postal_code, district, city, region, tier, validation
		FROM candidate
		WHERE id = $1
	`, id)

	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, fmt.Errorf("candidate %s: %w", id, snapshot.ErrNotFound)
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (models.Candidate, error) {
	var c models.Candidate
	var age sql.NullInt64
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &age,
		&c.PostalCode, &c.District, &c.City, &c.Region, &c.Tier, &c.Validation)
	if errors.Is(err, sql.ErrNoRows) {
		return c, err
	}
	if err != nil {
		return c, fmt.Errorf("failed to scan candidate: %w", err)
	}
	c.Age = nullableInt(age)
	return c, nil
}

// ListProposals returns proposals with their votes, all of them when candidateID is empty
func (s *Store) ListProposals(ctx context.Context, candidateID string) ([]models.Proposal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, candidate_id, title, description, category
		FROM proposal
		WHERE $1 = '' OR candidate_id = $1
		ORDER BY created_at, id
	`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	proposals := []models.Proposal{}
	index := make(map[string]int)
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(&p.ID, &p.CandidateID, &p.Title, &p.Description, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		p.Votes = []models.Vote{}
		index[p.ID] = len(proposals)
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read proposals: %w", err)
	}

	votes, err := s.db.QueryContext(ctx, `
		SELECT v.proposal_id, v.voter_id
		FROM proposal_vote v
		JOIN proposal p ON p.id = v.proposal_id
		WHERE $1 = '' OR p.candidate_id = $1
		ORDER BY v.proposal_id, v.cast_at, v.voter_id
	`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer votes.Close()

	for votes.Next() {
		var proposalID string
		var vote models.Vote
		if err := votes.Scan(&proposalID, &vote.VoterID); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		i, ok := index[proposalID]
		if !ok {
			continue
		}
		proposals[i].Votes = append(proposals[i].Votes, vote)
	}

	return proposals, votes.Err()
}

// GetCatalog returns the questionnaire catalog in display order
func (s *Store) GetCatalog(ctx context.Context) (models.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT numero, nombre FROM category ORDER BY position, numero
	`)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	catalog := models.Catalog{Categories: []models.Category{}}
	index := make(map[int]int)
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.Number, &cat.Name); err != nil {
			return models.Catalog{}, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Questions = []string{}
		index[cat.Number] = len(catalog.Categories)
		catalog.Categories = append(catalog.Categories, cat)
	}
	if err := rows.Err(); err != nil {
		return models.Catalog{}, fmt.Errorf("failed to read categories: %w", err)
	}

	questions, err := s.db.QueryContext(ctx, `
		SELECT category_numero, text FROM category_question ORDER BY category_numero, position
	`)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to query questions: %w", err)
	}
	defer questions.Close()

	for questions.Next() {
		var number int
		var text string
		if err := questions.Scan(&number, &text); err != nil {
			return models.Catalog{}, fmt.Errorf("failed to scan question: %w", err)
		}
		if i, ok := index[number]; ok {
			catalog.Categories[i].Questions = append(catalog.Categories[i].Questions, text)
		}
	}

	return catalog, questions.Err()
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
