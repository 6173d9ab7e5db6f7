// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/civic-analytics/metrics"
	"github.com/danielhkuo/civic-analytics/models"
)

// ErrNotFound is returned (optionally wrapped) when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// DefaultTimeout bounds a whole snapshot load
const DefaultTimeout = 10 * time.Second

// Source is the read contract of the external data store
type Source interface {
	ListVoters(ctx context.Context) ([]models.Voter, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	GetCandidate(ctx context.Context, id string) (models.Candidate, error)
	// ListProposals returns every proposal when candidateID is empty
	ListProposals(ctx context.Context, candidateID string) ([]models.Proposal, error)
	GetCatalog(ctx context.Context) (models.Catalog, error)
}

// Snapshot is a point-in-time copy of the data store. Treat it as read-only.
type Snapshot struct {
	Voters     []models.Voter
	Candidates []models.Candidate
	Proposals  []models.Proposal
	Catalog    models.Catalog

	// Candidate is set by LoadCandidate only
	Candidate *models.Candidate

	FetchedAt time.Time
}

// Loader fetches complete snapshots from a Source
type Loader struct {
	source  Source
	timeout time.Duration
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewLoader creates a Loader. A non-positive timeout selects DefaultTimeout; m may be nil.
func NewLoader(source Source, timeout time.Duration, m *metrics.Metrics) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		source:  source,
		timeout: timeout,
		metrics: m,
		tracer:  otel.Tracer("snapshot-loader"),
	}
}

// LoadAdmin fetches voters, candidates, all proposals, and the catalog.
// Any failed fetch fails the whole load.
func (l *Loader) LoadAdmin(ctx context.Context) (*Snapshot, error) {
	ctx, span := l.tracer.Start(ctx, "Loader.LoadAdmin")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(l.fetch(ctx, "voters", func(ctx context.Context) (err error) {
		snap.Voters, err = l.source.ListVoters(ctx)
		return err
	}))
	g.Go(l.fetch(ctx, "candidates", func(ctx context.Context) (err error) {
		snap.Candidates, err = l.source.ListCandidates(ctx)
		return err
	}))
	g.Go(l.fetch(ctx, "proposals", func(ctx context.Context) (err error) {
		snap.Proposals, err = l.source.ListProposals(ctx, "")
		return err
	}))
	g.Go(l.fetch(ctx, "catalog", func(ctx context.Context) (err error) {
		snap.Catalog, err = l.source.GetCatalog(ctx)
		return err
	}))

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	snap.FetchedAt = time.Now()
	l.normalize(snap)

	span.SetAttributes(
		attribute.Int("snapshot.voters", len(snap.Voters)),
		attribute.Int("snapshot.candidates", len(snap.Candidates)),
		attribute.Int("snapshot.proposals", len(snap.Proposals)),
	)

	return snap, nil
}

// LoadCandidate fetches one candidate, their proposals, all voters, and the catalog.
// Returns an error wrapping ErrNotFound when the candidate does not exist.
func (l *Loader) LoadCandidate(ctx context.Context, candidateID string) (*Snapshot, error) {
	ctx, span := l.tracer.Start(ctx, "Loader.LoadCandidate",
		trace.WithAttributes(attribute.String("candidate.id", candidateID)),
	)
	defer span.End()

	if candidateID == "" {
		return nil, fmt.Errorf("candidate id is required: %w", ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(l.fetch(ctx, "candidate", func(ctx context.Context) error {
		candidate, err := l.source.GetCandidate(ctx, candidateID)
		if err != nil {
			return err
		}
		snap.Candidate = &candidate
		return nil
	}))
	g.Go(l.fetch(ctx, "voters", func(ctx context.Context) (err error) {
		snap.Voters, err = l.source.ListVoters(ctx)
		return err
	}))
	g.Go(l.fetch(ctx, "proposals", func(ctx context.Context) (err error) {
		snap.Proposals, err = l.source.ListProposals(ctx, candidateID)
		return err
	}))
	g.Go(l.fetch(ctx, "catalog", func(ctx context.Context) (err error) {
		snap.Catalog, err = l.source.GetCatalog(ctx)
		return err
	}))

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	snap.FetchedAt = time.Now()
	l.normalize(snap)

	return snap, nil
}

// fetch wraps one source call with latency tracking and error context
func (l *Loader) fetch(ctx context.Context, operation string, call func(context.Context) error) func() error {
	return func() error {
		start := time.Now()
		err := call(ctx)
		l.metrics.ObserveFetch(operation, time.Since(start), err)

		if err != nil {
			// A missing collection is an upstream failure, never a missing candidate
			if operation != "candidate" && errors.Is(err, ErrNotFound) {
				return fmt.Errorf("fetch %s: upstream reported not found: %v", operation, err)
			}
			return fmt.Errorf("fetch %s: %w", operation, err)
		}
		return nil
	}
}
