// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import "github.com/luxfi/nightshade/utils/metric"

// Metrics tracks the externally observable behavior of one instance:
// how often updates are accepted, rejected, raise confidence, or
// trigger commit, and the confidence level currently held.
type Metrics struct {
	updatesAccepted   metric.Counter
	updatesRejected   metric.Counter
	adversariesMarked metric.Counter
	confidenceRaises  metric.Counter
	commits           metric.Counter
	confidence0       metric.Gauge
	confidence1       metric.Gauge
}

// NewMetrics builds a fresh, independently registered Metrics.
func NewMetrics() (*Metrics, error) {
	reg := metric.NewRegistry()
	return &Metrics{
		updatesAccepted:   reg.NewCounter("updates_accepted"),
		updatesRejected:   reg.NewCounter("updates_rejected"),
		adversariesMarked: reg.NewCounter("adversaries_marked"),
		confidenceRaises:  reg.NewCounter("confidence_raises"),
		commits:           reg.NewCounter("commits"),
		confidence0:       reg.NewGauge("confidence0"),
		confidence1:       reg.NewGauge("confidence1"),
	}, nil
}
