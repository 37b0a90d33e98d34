package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kezhuw/flist/internal/metrics"
)

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	m.Encoded(1, 2)
	m.Decoded(1, 2)
	m.Resumed()
	m.Failed()
	m.Curated(3)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.Encoded(2, 40)
	m.Encoded(1, 10)
	m.Decoded(3, 50)
	m.Resumed()
	m.Curated(0)
	m.Curated(4)

	tests := []struct {
		counter prometheus.Counter
		want    float64
	}{
		{m.RecordsEncoded, 3},
		{m.BytesEncoded, 50},
		{m.RecordsDecoded, 3},
		{m.BytesDecoded, 50},
		{m.DecodeResumes, 1},
		{m.DecodeFailures, 0},
		{m.Tombstones, 4},
	}
	for i, test := range tests {
		if got := testutil.ToFloat64(test.counter); got != test.want {
			t.Errorf("test=%d got=%v want=%v", i, got, test.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("registering twice did not panic")
		}
	}()
	metrics.New(reg)
}

func TestUnregistered(t *testing.T) {
	m := metrics.New(nil)
	m.Failed()
	if got := testutil.ToFloat64(m.DecodeFailures); got != 1 {
		t.Fatalf("got=%v want=1", got)
	}
}
