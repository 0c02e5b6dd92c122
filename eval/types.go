// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package eval defines the evaluation framework components plug into:
// correctness properties for the property-testing harness and metric
// definitions for the benchmark and monitoring systems.
package eval

import (
	"context"
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidProperty is returned when a property is malformed.
	ErrInvalidProperty = errors.New("invalid property definition")

	// ErrPropertyFailed is returned when a property check fails.
	ErrPropertyFailed = errors.New("property check failed")

	// ErrHealthCheckFailed is returned when a health check fails.
	ErrHealthCheckFailed = errors.New("health check failed")
)

// -----------------------------------------------------------------------------
// Core Interfaces
// -----------------------------------------------------------------------------

// Evaluable is the interface that all testable/benchmarkable components
// implement.
//
// Thread Safety: Implementations document their own concurrency contract;
// the framework never calls an Evaluable from more than one goroutine at
// a time.
type Evaluable interface {
	// Name returns a unique identifier for metrics and logging.
	// The name should be stable across versions and suitable for use
	// in metric labels (lowercase, underscore-separated).
	Name() string

	// Properties returns the correctness properties this component
	// guarantees. An empty slice indicates no properties to verify.
	Properties() []Property

	// Metrics returns the metrics this component exposes.
	// An empty slice indicates no custom metrics.
	Metrics() []MetricDefinition

	// HealthCheck verifies the component is functioning correctly.
	// Returns nil if healthy, error with details otherwise.
	HealthCheck(ctx context.Context) error
}

// -----------------------------------------------------------------------------
// Properties
// -----------------------------------------------------------------------------

// Property is a correctness property that can be checked against a
// component's inputs and outputs.
type Property struct {
	// Name identifies the property (lowercase, underscore-separated).
	Name string

	// Description explains what the property guarantees.
	Description string

	// Check verifies the property for one input/output pair. Either
	// argument may be nil when the property is a standing invariant
	// rather than an input/output relation.
	Check func(input, output any) error
}

// Validate checks that the property definition is well-formed.
func (p Property) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidProperty)
	}
	if p.Check == nil {
		return fmt.Errorf("%w: %s has no check function", ErrInvalidProperty, p.Name)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

// MetricType identifies the kind of metric being defined.
type MetricType int

const (
	// MetricCounter is a monotonically increasing counter.
	MetricCounter MetricType = iota

	// MetricGauge is a value that can go up and down.
	MetricGauge

	// MetricHistogram is a distribution of observed values.
	MetricHistogram
)

// String returns the string representation of a MetricType.
func (t MetricType) String() string {
	switch t {
	case MetricCounter:
		return "counter"
	case MetricGauge:
		return "gauge"
	case MetricHistogram:
		return "histogram"
	default:
		return fmt.Sprintf("metric_type(%d)", t)
	}
}

// MetricDefinition describes a metric a component exposes.
type MetricDefinition struct {
	// Name is the metric name as registered with Prometheus.
	Name string

	// Type is the metric type.
	Type MetricType

	// Description explains what the metric measures.
	Description string
}
