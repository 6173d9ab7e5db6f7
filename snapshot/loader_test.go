// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/civic-analytics/metrics"
	"github.com/danielhkuo/civic-analytics/models"
)

// fakeSource serves fixed data and can fail or stall individual operations
type fakeSource struct {
	voters     []models.Voter
	candidates []models.Candidate
	proposals  []models.Proposal
	catalog    models.Catalog

	failOn  string
	failErr error
	stallOn string
}

func (f *fakeSource) check(ctx context.Context, op string) error {
	if f.stallOn == op {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.failOn == op {
		if f.failErr != nil {
			return f.failErr
		}
		return errors.New(op + " unavailable")
	}
	return nil
}

func (f *fakeSource) ListVoters(ctx context.Context) ([]models.Voter, error) {
	if err := f.check(ctx, "voters"); err != nil {
		return nil, err
	}
	return f.voters, nil
}

func (f *fakeSource) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	if err := f.check(ctx, "candidates"); err != nil {
		return nil, err
	}
	return f.candidates, nil
}

func (f *fakeSource) GetCandidate(ctx context.Context, id string) (models.Candidate, error) {
	if err := f.check(ctx, "candidate"); err != nil {
		return models.Candidate{}, err
	}
	for _, c := range f.candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Candidate{}, ErrNotFound
}

func (f *fakeSource) ListProposals(ctx context.Context, candidateID string) ([]models.Proposal, error) {
	if err := f.check(ctx, "proposals"); err != nil {
		return nil, err
	}
	if candidateID == "" {
		return f.proposals, nil
	}
	var out []models.Proposal
	for _, p := range f.proposals {
		if p.CandidateID == candidateID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) GetCatalog(ctx context.Context) (models.Catalog, error) {
	if err := f.check(ctx, "catalog"); err != nil {
		return models.Catalog{}, err
	}
	return f.catalog, nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		voters: []models.Voter{
			{ID: "v1", City: "Puebla", Preferences: []models.Preference{{CategoryID: 1, Rating: 4}}},
			{ID: "v2", City: "Toluca"},
		},
		candidates: []models.Candidate{
			{ID: "c1", Tier: models.TierGovernor, Validation: models.ValidationValid},
			{ID: "c2", Tier: models.TierPresident, Validation: models.ValidationPending},
		},
		proposals: []models.Proposal{
			{ID: "p1", CandidateID: "c1", Category: "Salud", Votes: []models.Vote{{VoterID: "v1"}}},
			{ID: "p2", CandidateID: "c2", Category: "Economía"},
		},
		catalog: models.Catalog{Categories: []models.Category{
			{Number: 1, Name: "Economía"},
			{Number: 2, Name: "Salud"},
		}},
	}
}

func TestLoadAdmin(t *testing.T) {
	loader := NewLoader(newFakeSource(), time.Second, nil)

	snap, err := loader.LoadAdmin(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Voters, 2)
	assert.Len(t, snap.Candidates, 2)
	assert.Len(t, snap.Proposals, 2)
	assert.Len(t, snap.Catalog.Categories, 2)
	assert.Nil(t, snap.Candidate)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestLoadAdmin_FetchFailureFailsWholeLoad(t *testing.T) {
	for _, op := range []string{"voters", "candidates", "proposals", "catalog"} {
		t.Run(op, func(t *testing.T) {
			src := newFakeSource()
			src.failOn = op
			reg := prometheus.NewRegistry()
			m := metrics.New(reg)

			snap, err := NewLoader(src, time.Second, m).LoadAdmin(context.Background())

			require.Error(t, err)
			assert.Nil(t, snap)
			assert.Contains(t, err.Error(), "fetch "+op)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchFailures.WithLabelValues(op)))
		})
	}
}

func TestLoad_CollectionNotFoundIsNotACandidateMiss(t *testing.T) {
	for _, op := range []string{"voters", "proposals", "catalog"} {
		t.Run(op, func(t *testing.T) {
			src := newFakeSource()
			src.failOn = op
			src.failErr = fmt.Errorf("GET /%s: %w", op, ErrNotFound)

			_, err := NewLoader(src, time.Second, nil).LoadAdmin(context.Background())
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)

			_, err = NewLoader(src, time.Second, nil).LoadCandidate(context.Background(), "c1")
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLoadAdmin_Timeout(t *testing.T) {
	src := newFakeSource()
	src.stallOn = "catalog"

	_, err := NewLoader(src, 20*time.Millisecond, nil).LoadAdmin(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadCandidate(t *testing.T) {
	loader := NewLoader(newFakeSource(), time.Second, nil)

	snap, err := loader.LoadCandidate(context.Background(), "c1")
	require.NoError(t, err)

	require.NotNil(t, snap.Candidate)
	assert.Equal(t, "c1", snap.Candidate.ID)
	require.Len(t, snap.Proposals, 1)
	assert.Equal(t, "p1", snap.Proposals[0].ID)
	assert.Len(t, snap.Voters, 2)
	assert.Empty(t, snap.Candidates)
}

func TestLoadCandidate_NotFound(t *testing.T) {
	loader := NewLoader(newFakeSource(), time.Second, nil)

	_, err := loader.LoadCandidate(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = loader.LoadCandidate(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCandidate_NoProposalsGivesEmptySlice(t *testing.T) {
	src := newFakeSource()
	src.proposals = nil

	snap, err := NewLoader(src, time.Second, nil).LoadCandidate(context.Background(), "c2")
	require.NoError(t, err)

	assert.NotNil(t, snap.Proposals)
	assert.Empty(t, snap.Proposals)
}
