// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"sort"

	"github.com/danielhkuo/civic-analytics/models"
)

// member is the slice of a voter or candidate the demographic reduction needs
type member struct {
	age       *int
	city      string
	candidate bool
}

// AggregateDemographics reduces voters and candidates into age and location buckets.
// Candidates are counted regardless of their validation status.
func AggregateDemographics(voters []models.Voter, candidates []models.Candidate) models.DemographicsReport {
	population := make([]member, 0, len(voters)+len(candidates))
	for _, v := range voters {
		population = append(population, member{age: v.Age, city: v.City})
	}
	for _, c := range candidates {
		population = append(population, member{age: c.Age, city: c.City, candidate: true})
	}

	return models.DemographicsReport{
		AgeDistribution:      ageDistribution(population),
		LocationDistribution: locationDistribution(population),
	}
}

// ageDistribution buckets by literal age, ascending, with missing ages last
func ageDistribution(population []member) []models.AgeRow {
	byAge := make(map[int]*models.AgeRow)
	var unknown *models.AgeRow

	for _, m := range population {
		var row *models.AgeRow
		if m.age == nil {
			if unknown == nil {
				unknown = &models.AgeRow{}
			}
			row = unknown
		} else {
			row = byAge[*m.age]
			if row == nil {
				age := *m.age
				row = &models.AgeRow{Age: &age}
				byAge[age] = row
			}
		}

		if m.candidate {
			row.Candidates++
		} else {
			row.Voters++
		}
	}

	rows := make([]models.AgeRow, 0, len(byAge)+1)
	for _, row := range byAge {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return *rows[i].Age < *rows[j].Age
	})
	if unknown != nil {
		rows = append(rows, *unknown)
	}

	return rows
}

// locationDistribution pools voters and candidates per city, descending by count.
// Ties keep first-seen order.
func locationDistribution(population []member) []models.LocationRow {
	index := make(map[string]int)
	rows := make([]models.LocationRow, 0)

	for _, m := range population {
		city := m.city
		if city == "" {
			city = models.NoCity
		}

		i, ok := index[city]
		if !ok {
			i = len(rows)
			index[city] = i
			rows = append(rows, models.LocationRow{Name: city})
		}
		rows[i].Total++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	return rows
}
