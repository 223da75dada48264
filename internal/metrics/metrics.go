package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Recorder interface {
	AddPages(uid int64, n int)
	AddRecords(uid int64, added, replaced, rejected int)
	ObserveSync(uid int64, d time.Duration, err error)
	SetRecordsTotal(uid int64, n int)
}

type Prometheus struct {
	pages        *prometheus.CounterVec
	records      *prometheus.CounterVec
	syncDuration *prometheus.HistogramVec
	syncFailures *prometheus.CounterVec
	recordsTotal *prometheus.GaugeVec
}

// New registers collectors on reg. A nil reg or enabled=false yields a no-op recorder.
func New(enabled bool, reg prometheus.Registerer) Recorder {
	if !enabled || reg == nil {
		return Noop{}
	}

	f := promauto.With(reg)
	return &Prometheus{
		pages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "replay_catalog_pages_total",
			Help: "Catalog pages fetched",
		}, []string{"uid"}),

		records: f.NewCounterVec(prometheus.CounterOpts{
			Name: "replay_records_total",
			Help: "Records processed by outcome",
		}, []string{"uid", "outcome"}),

		syncDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "replay_sync_duration_seconds",
			Help:    "Duration of one identity sync",
			Buckets: prometheus.DefBuckets,
		}, []string{"uid"}),

		syncFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "replay_sync_failures_total",
			Help: "Identity syncs that ended in an error",
		}, []string{"uid"}),

		recordsTotal: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "replay_store_records",
			Help: "Records held in the identity store",
		}, []string{"uid"}),
	}
}

func label(uid int64) string { return strconv.FormatInt(uid, 10) }

func (m *Prometheus) AddPages(uid int64, n int) {
	m.pages.WithLabelValues(label(uid)).Add(float64(n))
}

func (m *Prometheus) AddRecords(uid int64, added, replaced, rejected int) {
	l := label(uid)
	m.records.WithLabelValues(l, "added").Add(float64(added))
	m.records.WithLabelValues(l, "replaced").Add(float64(replaced))
	m.records.WithLabelValues(l, "rejected").Add(float64(rejected))
}

func (m *Prometheus) ObserveSync(uid int64, d time.Duration, err error) {
	l := label(uid)
	m.syncDuration.WithLabelValues(l).Observe(d.Seconds())
	if err != nil {
		m.syncFailures.WithLabelValues(l).Inc()
	}
}

func (m *Prometheus) SetRecordsTotal(uid int64, n int) {
	m.recordsTotal.WithLabelValues(label(uid)).Set(float64(n))
}

// Noop discards everything.
type Noop struct{}

func (Noop) AddPages(int64, int)                     {}
func (Noop) AddRecords(int64, int, int, int)         {}
func (Noop) ObserveSync(int64, time.Duration, error) {}
func (Noop) SetRecordsTotal(int64, int)              {}
