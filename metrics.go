package flist

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kezhuw/flist/internal/metrics"
)

// Metrics counts records and bytes flowing through lists configured with
// it. One Metrics may be shared by any number of lists.
type Metrics = metrics.Metrics

// NewMetrics creates Metrics registered with reg, or unregistered if reg is
// nil. It panics if reg already has them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return metrics.New(reg)
}
