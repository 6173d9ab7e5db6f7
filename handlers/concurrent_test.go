// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/civic-analytics/db"
	"github.com/danielhkuo/civic-analytics/models"
	"github.com/danielhkuo/civic-analytics/testutil"
)

// TestConcurrentVotesAndReads casts votes while candidate stats are being read.
// Every read must see a consistent snapshot and duplicates must be rejected.
func TestConcurrentVotesAndReads(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler, _ := newStatsHandler(t, store)

	candidateID := testutil.CreateTestCandidate(t, store, models.Candidate{ID: "c1"})
	proposalID := testutil.CreateTestProposal(t, store, candidateID, "Salud")

	numVoters := 10
	for i := 0; i < numVoters; i++ {
		testutil.CreateTestVoter(t, store, models.Voter{ID: fmt.Sprintf("v%02d", i), City: "Puebla"})
	}

	var accepted, duplicates atomic.Int32
	var wg sync.WaitGroup

	// Each voter tries to vote twice
	for i := 0; i < numVoters*2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			err := store.CastVote(context.Background(), proposalID, fmt.Sprintf("v%02d", idx%numVoters))
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, db.ErrDuplicateVote):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected vote error: %v", err)
			}
		}(i)
	}

	// Readers run alongside the writers
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest("GET", "/stats/candidates/"+candidateID, nil)
			req.SetPathValue("id", candidateID)
			w := httptest.NewRecorder()
			handler.GetCandidateStats(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Expected 200, got %d", w.Code)
				return
			}

			var report models.CandidateSupportReport
			if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
				t.Errorf("Failed to decode report: %v", err)
				return
			}
			if report.SupportRatio < 0 || report.SupportRatio > 1 {
				t.Errorf("support ratio out of range: %v", report.SupportRatio)
			}
			if report.UniqueSupporters > report.TotalVoters {
				t.Errorf("more supporters (%d) than voters (%d)", report.UniqueSupporters, report.TotalVoters)
			}
		}()
	}

	wg.Wait()

	if int(accepted.Load()) != numVoters {
		t.Errorf("Expected %d accepted votes, got %d", numVoters, accepted.Load())
	}
	if int(duplicates.Load()) != numVoters {
		t.Errorf("Expected %d duplicate votes, got %d", numVoters, duplicates.Load())
	}

	// Final read sees every voter as a supporter
	req := httptest.NewRequest("GET", "/stats/candidates/"+candidateID, nil)
	req.SetPathValue("id", candidateID)
	w := httptest.NewRecorder()
	handler.GetCandidateStats(w, req)

	var report models.CandidateSupportReport
	testutil.AssertJSON(t, w, &report)
	if report.UniqueSupporters != numVoters || report.SupportPercentage != 100 {
		t.Errorf("Expected full support from %d voters, got %d (%v%%)",
			numVoters, report.UniqueSupporters, report.SupportPercentage)
	}
}
