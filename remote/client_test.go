// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/civic-analytics/models"
	"github.com/danielhkuo/civic-analytics/snapshot"
)

const votersJSON = `[
  {
    "_id": "v1",
    "nombre": "Ana",
    "apellido": "López",
    "edad": 34,
    "codigo_postal": 72000,
    "colonia": "Centro",
    "ciudad": "Puebla ",
    "estado": "Puebla",
    "preferencias": [
      {"categoria_id": 1, "pregunta_id": 1, "valoracion": 5},
      {"categoria_id": "2", "pregunta_id": 3, "valoracion": 4},
      {"categoria_id": 3, "pregunta_id": 1, "valoracion": 3.5},
      {"categoria_id": 3, "pregunta_id": 2}
    ]
  },
  {"_id": {"$oid": "v2"}, "edad": "41", "ciudad": "", "preferencias": null},
  {"_id": "v3", "edad": null}
]`

const candidatesJSON = `[
  {"_id": "c1", "nombre": "Luis", "edad": 50, "ciudad": "Toluca", "estado": "México", "candidatura": "Gobernador", "validacion": "valida"},
  {"_id": "c2", "candidatura": "presidente", "validacion": "pendiente"},
  {"_id": "c3", "validacion": "invalida"}
]`

const proposalsJSON = `[
  {"_id": "p1", "id_politico": "c1", "titulo": "Hospitales", "categoria": "Salud",
   "votos": [{"id_votante": {"$oid": "v1"}}, {"id_votante": "v2"}, {"id_votante": {"$oid": "v1"}}]},
  {"_id": "p2", "id_politico": {"$oid": "c1"}, "categoria": "Educación"}
]`

const catalogJSON = `{"categorias": [
  {"numero": 1, "nombre": "Economía y Empleo", "preguntas": ["a", "b"]},
  {"numero": "2", "nombre": "Salud", "preguntas": ["c"]}
]}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}
	}
	mux.HandleFunc("GET /votante", serve(votersJSON))
	mux.HandleFunc("GET /votante/preguntas", serve(catalogJSON))
	mux.HandleFunc("GET /politico", serve(candidatesJSON))
	mux.HandleFunc("GET /politico/c1", serve(`{"_id": "c1", "candidatura": "gobernador", "validacion": "valida"}`))
	mux.HandleFunc("GET /politico/empty", serve(`{}`))
	mux.HandleFunc("GET /propuesta", serve(proposalsJSON))
	mux.HandleFunc("GET /propuesta/politico/c1", serve(proposalsJSON))
	mux.HandleFunc("GET /broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListVoters(t *testing.T) {
	client := NewClient(newTestServer(t).URL+"/", time.Second)

	voters, err := client.ListVoters(context.Background())
	require.NoError(t, err)
	require.Len(t, voters, 3)

	v1 := voters[0]
	assert.Equal(t, "v1", v1.ID)
	require.NotNil(t, v1.Age)
	assert.Equal(t, 34, *v1.Age)
	assert.Equal(t, "72000", v1.PostalCode)
	assert.Equal(t, "Centro", v1.District)
	assert.Equal(t, "Puebla", v1.City)
	assert.Equal(t, "Puebla", v1.Region)
	assert.Equal(t, []models.Preference{
		{CategoryID: 1, QuestionIndex: 0, Rating: 5},
		{CategoryID: 2, QuestionIndex: 2, Rating: 4},
		{CategoryID: 3, QuestionIndex: 0, Rating: 0},
		{CategoryID: 3, QuestionIndex: 1, Rating: 0},
	}, v1.Preferences)

	assert.Equal(t, "v2", voters[1].ID)
	require.NotNil(t, voters[1].Age)
	assert.Equal(t, 41, *voters[1].Age)
	assert.Empty(t, voters[1].Preferences)

	assert.Nil(t, voters[2].Age)
}

func TestListCandidates(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)

	candidates, err := client.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, models.TierGovernor, candidates[0].Tier)
	assert.Equal(t, models.ValidationValid, candidates[0].Validation)
	assert.Equal(t, models.TierPresident, candidates[1].Tier)
	assert.Equal(t, models.ValidationPending, candidates[1].Validation)
	assert.Equal(t, models.ValidationInvalid, candidates[2].Validation)
}

func TestGetCandidate(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)

	c, err := client.GetCandidate(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)

	_, err = client.GetCandidate(context.Background(), "unknown")
	assert.ErrorIs(t, err, snapshot.ErrNotFound)

	_, err = client.GetCandidate(context.Background(), "empty")
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
}

func TestListProposals(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)

	for _, candidateID := range []string{"", "c1"} {
		proposals, err := client.ListProposals(context.Background(), candidateID)
		require.NoError(t, err)
		require.Len(t, proposals, 2)

		assert.Equal(t, "c1", proposals[0].CandidateID)
		assert.Equal(t, []models.Vote{{VoterID: "v1"}, {VoterID: "v2"}, {VoterID: "v1"}}, proposals[0].Votes)
		assert.Equal(t, "c1", proposals[1].CandidateID)
		assert.NotNil(t, proposals[1].Votes)
		assert.Empty(t, proposals[1].Votes)
	}
}

func TestGetCatalog(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)

	c, err := client.GetCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.Category{
		{Number: 1, Name: "Economía y Empleo", Questions: []string{"a", "b"}},
		{Number: 2, Name: "Salud", Questions: []string{"c"}},
	}, c.Categories)
}

func TestGetJSON_UnexpectedStatus(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)

	var out any
	err := client.getJSON(context.Background(), "/broken", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
	assert.NotErrorIs(t, err, snapshot.ErrNotFound)
}

func TestListEndpoints_NotFoundIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, time.Second)

	calls := map[string]func() error{
		"voters": func() error {
			_, err := client.ListVoters(context.Background())
			return err
		},
		"candidates": func() error {
			_, err := client.ListCandidates(context.Background())
			return err
		},
		"proposals": func() error {
			_, err := client.ListProposals(context.Background(), "c1")
			return err
		},
		"catalog": func() error {
			_, err := client.GetCatalog(context.Background())
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.NotErrorIs(t, err, snapshot.ErrNotFound)

			var status *StatusError
			require.ErrorAs(t, err, &status)
			assert.Equal(t, http.StatusNotFound, status.Code)
		})
	}

	_, err := client.GetCandidate(context.Background(), "c1")
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
}

func TestLoaderOverClient(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)
	loader := snapshot.NewLoader(client, time.Second, nil)

	snap, err := loader.LoadCandidate(context.Background(), "c1")
	require.NoError(t, err)

	// Malformed ratings are dropped at the snapshot boundary
	assert.Len(t, snap.Voters[0].Preferences, 2)
	assert.Len(t, snap.Proposals, 2)
	assert.Equal(t, "c1", snap.Candidate.ID)
}
