// Package metrics provides Prometheus counters for file list coding.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the counters shared by every list configured with it. A
// nil *Metrics records nothing.
type Metrics struct {
	RecordsEncoded prometheus.Counter
	RecordsDecoded prometheus.Counter
	BytesEncoded   prometheus.Counter
	BytesDecoded   prometheus.Counter
	DecodeResumes  prometheus.Counter
	DecodeFailures prometheus.Counter
	Tombstones     prometheus.Counter
}

// New creates the counters and registers them with reg. A nil reg leaves
// them unregistered. Like promauto, it panics if they are registered twice.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsEncoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "flist_records_encoded_total",
			Help: "Total number of file records encoded",
		}),
		RecordsDecoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "flist_records_decoded_total",
			Help: "Total number of file records decoded",
		}),
		BytesEncoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "flist_bytes_encoded_total",
			Help: "Total bytes of encoded file list output",
		}),
		BytesDecoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "flist_bytes_decoded_total",
			Help: "Total bytes of file list input consumed",
		}),
		DecodeResumes: factory.NewCounter(prometheus.CounterOpts{
			Name: "flist_decode_resumes_total",
			Help: "Times decoding stopped mid-record waiting for more input",
		}),
		DecodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "flist_decode_failures_total",
			Help: "Times decoding aborted on malformed input",
		}),
		Tombstones: factory.NewCounter(prometheus.CounterOpts{
			Name: "flist_curate_tombstones_total",
			Help: "Duplicate records turned into tombstones by curation",
		}),
	}
}

func (m *Metrics) Encoded(records, bytes int) {
	if m == nil {
		return
	}
	m.RecordsEncoded.Add(float64(records))
	m.BytesEncoded.Add(float64(bytes))
}

func (m *Metrics) Decoded(records, bytes int) {
	if m == nil {
		return
	}
	m.RecordsDecoded.Add(float64(records))
	m.BytesDecoded.Add(float64(bytes))
}

func (m *Metrics) Resumed() {
	if m != nil {
		m.DecodeResumes.Inc()
	}
}

func (m *Metrics) Failed() {
	if m != nil {
		m.DecodeFailures.Inc()
	}
}

func (m *Metrics) Curated(tombstones int) {
	if m != nil {
		m.Tombstones.Add(float64(tombstones))
	}
}
