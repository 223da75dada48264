package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledIsNoop(t *testing.T) {
	assert.IsType(t, Noop{}, New(false, prometheus.NewRegistry()))
	assert.IsType(t, Noop{}, New(true, nil))
}

func TestPrometheus_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(true, reg)
	m, ok := rec.(*Prometheus)
	require.True(t, ok)

	rec.AddPages(15810, 3)
	rec.AddRecords(15810, 2, 1, 4)
	rec.SetRecordsTotal(15810, 42)
	rec.ObserveSync(15810, time.Second, errors.New("boom"))
	rec.ObserveSync(15810, time.Second, nil)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.pages.WithLabelValues("15810")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.records.WithLabelValues("15810", "added")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.records.WithLabelValues("15810", "rejected")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.recordsTotal.WithLabelValues("15810")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.syncFailures.WithLabelValues("15810")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.syncDuration))
}
