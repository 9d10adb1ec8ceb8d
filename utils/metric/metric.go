// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import "github.com/luxfi/metrics"

// Counter tracks a count.
type Counter interface {
	Inc()
	Add(delta int64)
	Read() int64
}

// counter wraps a luxfi/metrics Counter
type counter struct {
	ctr metrics.Counter
}

// Inc increments the counter by 1
func (c *counter) Inc() {
	c.ctr.Inc()
}

// Add adds delta to the counter
func (c *counter) Add(delta int64) {
	c.ctr.Add(float64(delta))
}

// Read returns the current count
func (c *counter) Read() int64 {
	return int64(c.ctr.Get())
}

// Gauge tracks a value that can go up or down.
type Gauge interface {
	Set(value float64)
	Add(delta float64)
	Read() float64
}

// gauge wraps a luxfi/metrics Gauge
type gauge struct {
	g metrics.Gauge
}

// Set sets the gauge to a specific value
func (g *gauge) Set(value float64) {
	g.g.Set(value)
}

// Add adds delta to the gauge
func (g *gauge) Add(delta float64) {
	g.g.Add(delta)
}

// Read returns the current value
func (g *gauge) Read() float64 {
	return g.g.Get()
}

// Registry is a collection of metrics.
type Registry interface {
	NewCounter(name string) Counter
	NewGauge(name string) Gauge
}

// registry wraps a luxfi/metrics instance.
type registry struct {
	metrics metrics.Metrics
}

// NewRegistry returns a new Registry
func NewRegistry() Registry {
	return &registry{
		metrics: metrics.New("nightshade"),
	}
}

// NewCounter creates and registers a new counter
func (r *registry) NewCounter(name string) Counter {
	return &counter{
		ctr: r.metrics.NewCounter(name, "Counter: "+name),
	}
}

// NewGauge creates and registers a new gauge
func (r *registry) NewGauge(name string) Gauge {
	return &gauge{
		g: r.metrics.NewGauge(name, "Gauge: "+name),
	}
}
