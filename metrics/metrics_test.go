// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("voters", 10*time.Millisecond, nil)
	m.ObserveFetch("voters", 20*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchLatency))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchFailures.WithLabelValues("voters")))
}

func TestAddDropped(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AddDropped("invalid_rating", 3)
	m.AddDropped("invalid_rating", 0)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.DroppedRecords.WithLabelValues("invalid_rating")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveFetch("voters", time.Second, nil)
		m.ObserveAggregate("demographics", time.Second)
		m.AddDropped("duplicate_preference", 1)
	})
}
