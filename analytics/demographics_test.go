// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/civic-analytics/models"
)

func TestAggregateDemographics_Empty(t *testing.T) {
	report := AggregateDemographics(nil, nil)

	assert.NotNil(t, report.AgeDistribution)
	assert.NotNil(t, report.LocationDistribution)
	assert.Empty(t, report.AgeDistribution)
	assert.Empty(t, report.LocationDistribution)
}

func TestAggregateDemographics_AgeBuckets(t *testing.T) {
	voters := []models.Voter{
		{ID: "v1", Age: intPtr(45)},
		{ID: "v2", Age: intPtr(30)},
		{ID: "v3", Age: intPtr(30)},
		{ID: "v4"},
	}
	candidates := []models.Candidate{
		{ID: "c1", Age: intPtr(45), Validation: models.ValidationInvalid},
		{ID: "c2", Age: intPtr(52), Validation: models.ValidationPending},
	}

	report := AggregateDemographics(voters, candidates)

	require.Len(t, report.AgeDistribution, 4)

	expected := []struct {
		age        *int
		voters     int
		candidates int
	}{
		{intPtr(30), 2, 0},
		{intPtr(45), 1, 1},
		{intPtr(52), 0, 1},
		{nil, 1, 0},
	}
	for i, want := range expected {
		got := report.AgeDistribution[i]
		if want.age == nil {
			assert.Nil(t, got.Age, "row %d", i)
		} else {
			require.NotNil(t, got.Age, "row %d", i)
			assert.Equal(t, *want.age, *got.Age, "row %d", i)
		}
		assert.Equal(t, want.voters, got.Voters, "row %d voters", i)
		assert.Equal(t, want.candidates, got.Candidates, "row %d candidates", i)
	}
}

func TestAggregateDemographics_LocationBuckets(t *testing.T) {
	voters := []models.Voter{
		{ID: "v1", City: "Puebla"},
		{ID: "v2", City: "Toluca"},
		{ID: "v3"},
		{ID: "v4", City: "Toluca"},
		{ID: "v5", City: "Puebla"},
	}
	candidates := []models.Candidate{
		{ID: "c1", City: "Toluca"},
		{ID: "c2", City: "León"},
	}

	report := AggregateDemographics(voters, candidates)

	assert.Equal(t, []models.LocationRow{
		{Name: "Toluca", Total: 3},
		{Name: "Puebla", Total: 2},
		{Name: models.NoCity, Total: 1},
		{Name: "León", Total: 1},
	}, report.LocationDistribution)
}

func TestAggregateDemographics_Idempotent(t *testing.T) {
	voters := []models.Voter{
		{ID: "v1", Age: intPtr(20), City: "B"},
		{ID: "v2", Age: intPtr(18), City: "A"},
	}
	candidates := []models.Candidate{{ID: "c1", Age: intPtr(40), City: "A"}}

	first := AggregateDemographics(voters, candidates)
	second := AggregateDemographics(voters, candidates)

	assert.Equal(t, first, second)
	assert.Equal(t, "v1", voters[0].ID, "inputs must not be reordered")
}
