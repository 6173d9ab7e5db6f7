// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Candidacy tiers
const (
	TierPresident          = "presidente"
	TierGovernor           = "gobernador"
	TierMunicipalPresident = "presidente municipal"
)

// Candidate validation statuses
const (
	ValidationPending = "pending"
	ValidationValid   = "valid"
	ValidationInvalid = "invalid"
)

// Rating bounds for questionnaire answers
const (
	MinRating = 1
	MaxRating = 5
)

// Placeholders substituted for missing fields
const (
	NoCity   = "no city"
	NoRegion = "no region"
	NoAge    = "no age"
)

// Voter is a registered citizen and their questionnaire answers
type Voter struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Age         *int         `json:"age,omitempty"`
	PostalCode  string       `json:"postal_code"`
	District    string       `json:"district"`
	City        string       `json:"city"`
	Region      string       `json:"region"`
	Preferences []Preference `json:"preferences"`
}

// Preference is one rated statement. Rating 0 means the answer is missing.
type Preference struct {
	CategoryID    int `json:"category_id" validate:"min=0"`
	QuestionIndex int `json:"question_index" validate:"min=0"`
	Rating        int `json:"rating" validate:"min=1,max=5"`
}

// Candidate is a person running for office at one tier
type Candidate struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Age        *int   `json:"age,omitempty"`
	PostalCode string `json:"postal_code"`
	District   string `json:"district"`
	City       string `json:"city"`
	Region     string `json:"region"`
	Tier       string `json:"tier"`
	Validation string `json:"validation"`
}

// Proposal is published by a candidate under a catalog category name
type Proposal struct {
	ID          string `json:"id"`
	CandidateID string `json:"candidate_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Votes       []Vote `json:"votes"`
}

// Vote is one voter backing a proposal. There is no weight.
type Vote struct {
	VoterID string `json:"voter_id"`
}

// Category groups questionnaire statements. Number is the id used by preferences.
type Category struct {
	Number    int      `json:"numero" yaml:"numero" validate:"min=1"`
	Name      string   `json:"nombre" yaml:"nombre" validate:"required"`
	Questions []string `json:"preguntas" yaml:"preguntas" validate:"dive,required"`
}

// Catalog lists categories in display order
type Catalog struct {
	Categories []Category `json:"categorias" yaml:"categories" validate:"dive"`
}

// Administrator view

// AgeRow counts voters and candidates sharing one age
type AgeRow struct {
	Age        *int `json:"age"` // nil collects records without an age
	Voters     int  `json:"voters"`
	Candidates int  `json:"candidates"`
}

// LocationRow counts people per city
type LocationRow struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// DemographicsReport is the demographic half of the administrator view
type DemographicsReport struct {
	AgeDistribution      []AgeRow      `json:"ageDistribution"`
	LocationDistribution []LocationRow `json:"locationDistribution"`
}

// CategoryScore is the sum of all ratings given in a category
type CategoryScore struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}

// PlatformTotals holds headline counts for the whole platform
type PlatformTotals struct {
	Voters                 int            `json:"voters"`
	Candidates             int            `json:"candidates"`
	Proposals              int            `json:"proposals"`
	Votes                  int            `json:"votes"`
	CandidatesByValidation map[string]int `json:"candidatesByValidation"`
	CandidatesByTier       map[string]int `json:"candidatesByTier"`
}

// AdminReport is the administrator dashboard payload
type AdminReport struct {
	Demographics   DemographicsReport `json:"demographics"`
	CategoryScores []CategoryScore    `json:"categoryScores"`
	Totals         PlatformTotals     `json:"totals"`
	GeneratedAt    time.Time          `json:"generatedAt"`
}

// Candidate view

// CategoryVotes counts votes on a candidate's proposals in one category
type CategoryVotes struct {
	Category string `json:"category"`
	Votes    int    `json:"votes"`
}

// HistogramBucket is one bar of a supporter histogram
type HistogramBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Age   *int   `json:"age,omitempty"` // set on age buckets only
}

// CandidateSupportReport describes who supports a candidate's proposals and where
type CandidateSupportReport struct {
	CandidateID          string            `json:"candidateId"`
	VotesByCategory      []CategoryVotes   `json:"votesByCategory"`
	SupportRatio         float64           `json:"supportRatio"`
	SupportPercentage    float64           `json:"supportPercentage"`
	AgeHistogram         []HistogramBucket `json:"ageHistogram"`
	LocationHistogram    []HistogramBucket `json:"locationHistogram"`
	TotalVoters          int               `json:"totalVoters"`
	UniqueSupporters     int               `json:"uniqueSupporters"`
	TotalProposals       int               `json:"totalProposals"`
	EngagedProposalCount int               `json:"engagedProposalCount"`
	HasData              bool              `json:"hasData"`
}

// ErrorResponse is the JSON body of every non-2xx reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
