package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels.
const (
	OpIssue  = "issue"
	OpParse  = "parse"
	OpVerify = "verify"
)

// Result labels.
const (
	ResultOK               = "ok"
	ResultFieldOverflow    = "field_overflow"
	ResultMalformed        = "malformed"
	ResultChecksumMismatch = "checksum_mismatch"
	ResultError            = "error"
)

// CodecMetrics holds the Prometheus collectors for codec operations.
type CodecMetrics struct {
	operations *prometheus.CounterVec
}

// NewCodecMetrics creates the collectors and registers them on reg.
func NewCodecMetrics(reg prometheus.Registerer) (*CodecMetrics, error) {
	m := &CodecMetrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sicoob",
				Subsystem: "codec",
				Name:      "operations_total",
				Help:      "Total number of free field codec operations by outcome.",
			},
			[]string{"operation", "result"},
		),
	}

	// Registering twice on the same registry is an error the caller must see.
	if err := reg.Register(m.operations); err != nil {
		return nil, err
	}

	return m, nil
}

// Observe counts one operation. A nil receiver is a no-op so callers may run without metrics.
func (m *CodecMetrics) Observe(operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// WriteTextfile dumps everything gathered by g to path in the Prometheus text
// format, for pickup by a node exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, g)
}
