// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielhkuo/civic-analytics/models"
)

// id accepts "abc", {"$oid": "abc"}, or a bare number
type id string

func (i *id) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = id(strings.TrimSpace(s))
	case '{':
		var wrapped struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		*i = id(strings.TrimSpace(wrapped.OID))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported id %s", data)
		}
		*i = id(n.String())
	}
	return nil
}

// flexInt accepts an integer, a numeric string, or null.
// Anything else leaves it unset instead of failing the whole document.
type flexInt struct {
	value *int
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	f.value = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		raw = strings.TrimSpace(raw)
	} else {
		raw = string(data)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	f.value = &n
	return nil
}

func (f flexInt) or(fallback int) int {
	if f.value == nil {
		return fallback
	}
	return *f.value
}

// flexString accepts a string or a number (postal codes arrive as both)
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	*f = flexString(data)
	return nil
}

type voterRecord struct {
	ID           id                 `json:"_id"`
	Nombre       string             `json:"nombre"`
	Apellido     string             `json:"apellido"`
	Edad         flexInt            `json:"edad"`
	CodigoPostal flexString         `json:"codigo_postal"`
	Colonia      string             `json:"colonia"`
	Ciudad       string             `json:"ciudad"`
	Estado       string             `json:"estado"`
	Preferencias []preferenceRecord `json:"preferencias"`
}

type preferenceRecord struct {
	CategoriaID flexInt         `json:"categoria_id"`
	PreguntaID  flexInt         `json:"pregunta_id"` // 1-based
	Valoracion  json.RawMessage `json:"valoracion"`
}

type candidateRecord struct {
	ID           id         `json:"_id"`
	Nombre       string     `json:"nombre"`
	Apellido     string     `json:"apellido"`
	Edad         flexInt    `json:"edad"`
	CodigoPostal flexString `json:"codigo_postal"`
	Colonia      string     `json:"colonia"`
	Ciudad       string     `json:"ciudad"`
	Estado       string     `json:"estado"`
	Candidatura  string     `json:"candidatura"`
	Validacion   string     `json:"validacion"`
}

type proposalRecord struct {
	ID          id           `json:"_id"`
	IDPolitico  id           `json:"id_politico"`
	Titulo      string       `json:"titulo"`
	Descripcion string       `json:"descripcion"`
	Categoria   string       `json:"categoria"`
	Votos       []voteRecord `json:"votos"`
}

type voteRecord struct {
	IDVotante id `json:"id_votante"`
}

type catalogRecord struct {
	Categorias []struct {
		Numero    flexInt  `json:"numero"`
		Nombre    string   `json:"nombre"`
		Preguntas []string `json:"preguntas"`
	} `json:"categorias"`
}

func (r voterRecord) toModel() models.Voter {
	v := models.Voter{
		ID:          string(r.ID),
		FirstName:   r.Nombre,
		LastName:    r.Apellido,
		Age:         r.Edad.value,
		PostalCode:  string(r.CodigoPostal),
		District:    strings.TrimSpace(r.Colonia),
		City:        strings.TrimSpace(r.Ciudad),
		Region:      strings.TrimSpace(r.Estado),
		Preferences: make([]models.Preference, 0, len(r.Preferencias)),
	}

	for _, p := range r.Preferencias {
		v.Preferences = append(v.Preferences, models.Preference{
			CategoryID:    p.CategoriaID.or(-1),
			QuestionIndex: p.PreguntaID.or(0) - 1,
			Rating:        parseRating(p.Valoracion),
		})
	}

	return v
}

// parseRating returns 0 for missing or non-integer ratings so that
// normalization drops the answer
func parseRating(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || raw[0] == '{' || raw[0] == '[' {
		return 0
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0
	}
	return n
}

func (r candidateRecord) toModel() models.Candidate {
	return models.Candidate{
		ID:         string(r.ID),
		FirstName:  r.Nombre,
		LastName:   r.Apellido,
		Age:        r.Edad.value,
		PostalCode: string(r.CodigoPostal),
		District:   strings.TrimSpace(r.Colonia),
		City:       strings.TrimSpace(r.Ciudad),
		Region:     strings.TrimSpace(r.Estado),
		Tier:       strings.ToLower(strings.TrimSpace(r.Candidatura)),
		Validation: validationStatus(r.Validacion),
	}
}

func validationStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valida", "válida", models.ValidationValid:
		return models.ValidationValid
	case "invalida", "inválida", models.ValidationInvalid:
		return models.ValidationInvalid
	default:
		return models.ValidationPending
	}
}

func (r proposalRecord) toModel() models.Proposal {
	p := models.Proposal{
		ID:          string(r.ID),
		CandidateID: string(r.IDPolitico),
		Title:       r.Titulo,
		Description: r.Descripcion,
		Category:    strings.TrimSpace(r.Categoria),
		Votes:       make([]models.Vote, 0, len(r.Votos)),
	}
	for _, v := range r.Votos {
		p.Votes = append(p.Votes, models.Vote{VoterID: string(v.IDVotante)})
	}
	return p
}

func (r catalogRecord) toModel() models.Catalog {
	c := models.Catalog{Categories: make([]models.Category, 0, len(r.Categorias))}
	for _, cat := range r.Categorias {
		c.Categories = append(c.Categories, models.Category{
			Number:    cat.Numero.or(0),
			Name:      strings.TrimSpace(cat.Nombre),
			Questions: cat.Preguntas,
		})
	}
	return c
}
