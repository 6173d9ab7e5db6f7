// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/civic-analytics/catalog"
	"github.com/danielhkuo/civic-analytics/db"
	"github.com/danielhkuo/civic-analytics/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a store over a fresh database seeded with the default catalog
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	store := db.NewStore(SetupTestDB(t))
	if err := store.SaveCatalog(context.Background(), catalog.Default()); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
	return store
}

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}

// CreateTestVoter stores a voter and returns its ID
func CreateTestVoter(t *testing.T, store *db.Store, v models.Voter) string {
	t.Helper()

	id, err := store.InsertVoter(context.Background(), v)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
	return id
}

// CreateTestCandidate stores a candidate and returns its ID
func CreateTestCandidate(t *testing.T, store *db.Store, c models.Candidate) string {
	t.Helper()

	if c.Tier == "" {
		c.Tier = models.TierGovernor
	}
	id, err := store.InsertCandidate(context.Background(), c)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	return id
}

// CreateTestProposal stores a proposal for a candidate, casts one vote per
// voter ID, and returns the proposal ID
func CreateTestProposal(t *testing.T, store *db.Store, candidateID, category string, voterIDs ...string) string {
	t.Helper()

	ctx := context.Background()
	id, err := store.InsertProposal(ctx, models.Proposal{
		CandidateID: candidateID,
		Title:       "Test Proposal",
		Category:    category,
	})
	if err != nil {
		t.Fatalf("Failed to create test proposal: %v", err)
	}

	for _, voterID := range voterIDs {
		if err := store.CastVote(ctx, id, voterID); err != nil {
			t.Fatalf("Failed to cast test vote: %v", err)
		}
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
