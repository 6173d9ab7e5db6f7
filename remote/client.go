// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/civic-analytics/models"
	"github.com/danielhkuo/civic-analytics/snapshot"
)

// maxBodyBytes caps a single response body
const maxBodyBytes = 64 << 20

// StatusError is a non-2xx response from the data API
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.Path, e.Code)
}

// Client reads entities from the platform's REST data store.
// It implements snapshot.Source.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ snapshot.Source = (*Client)(nil)

// NewClient creates a client for baseURL (e.g. "https://api.example.org")
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListVoters handles GET /votante
func (c *Client) ListVoters(ctx context.Context) ([]models.Voter, error) {
	var records []voterRecord
	if err := c.getJSON(ctx, "/votante", &records); err != nil {
		return nil, err
	}

	voters := make([]models.Voter, 0, len(records))
	for _, r := range records {
		voters = append(voters, r.toModel())
	}
	return voters, nil
}

// ListCandidates handles GET /politico
func (c *Client) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	var records []candidateRecord
	if err := c.getJSON(ctx, "/politico", &records); err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(records))
	for _, r := range records {
		candidates = append(candidates, r.toModel())
	}
	return candidates, nil
}

// GetCandidate handles GET /politico/{id}
func (c *Client) GetCandidate(ctx context.Context, candidateID string) (models.Candidate, error) {
	var record candidateRecord
	err := c.getJSON(ctx, "/politico/"+url.PathEscape(candidateID), &record)

	// Only a missing candidate is a not-found; list endpoints never are
	var status *StatusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		return models.Candidate{}, fmt.Errorf("candidate %s: %w", candidateID, snapshot.ErrNotFound)
	}
	if err != nil {
		return models.Candidate{}, err
	}
	if record.ID == "" {
		return models.Candidate{}, fmt.Errorf("candidate %s: %w", candidateID, snapshot.ErrNotFound)
	}
	return record.toModel(), nil
}

// ListProposals handles GET /propuesta and GET /propuesta/politico/{id}
func (c *Client) ListProposals(ctx context.Context, candidateID string) ([]models.Proposal, error) {
	path := "/propuesta"
	if candidateID != "" {
		path = "/propuesta/politico/" + url.PathEscape(candidateID)
	}

	var records []proposalRecord
	if err := c.getJSON(ctx, path, &records); err != nil {
		return nil, err
	}

	proposals := make([]models.Proposal, 0, len(records))
	for _, r := range records {
		proposals = append(proposals, r.toModel())
	}
	return proposals, nil
}

// GetCatalog handles GET /votante/preguntas
func (c *Client) GetCatalog(ctx context.Context) (models.Catalog, error) {
	var record catalogRecord
	if err := c.getJSON(ctx, "/votante/preguntas", &record); err != nil {
		return models.Catalog{}, err
	}
	return record.toModel(), nil
}

// getJSON performs a GET and decodes the body into v.
// Any non-2xx status is returned as a *StatusError.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Path: path, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("GET %s: failed to decode response: %w", path, err)
	}
	return nil
}
