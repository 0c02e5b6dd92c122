// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package conflict

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// -----------------------------------------------------------------------------
// Tracker Metrics - first-class observability for conflict learning
// -----------------------------------------------------------------------------

var (
	// clausesLearnedTotal counts learned clauses by source.
	//
	// Labels:
	//   - source: "reported" for clauses built from failure reports,
	//     "driver" for clauses added directly by the driver.
	clausesLearnedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decisiontrace",
			Subsystem: "conflict",
			Name:      "clauses_learned_total",
			Help:      "Total learned clauses by source",
		},
		[]string{"source"},
	)

	// clausesEvictedTotal counts clauses dropped by the bounded store.
	//
	// Labels:
	//   - reason: "subsumed" or "overflow".
	clausesEvictedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decisiontrace",
			Subsystem: "conflict",
			Name:      "clauses_evicted_total",
			Help:      "Total clauses dropped by the bounded store by reason",
		},
		[]string{"reason"},
	)

	// decisionsBlockedTotal counts decisions blocked by learned clauses.
	// High counts indicate the learning is preventing repeated mistakes.
	decisionsBlockedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "decisiontrace",
			Subsystem: "conflict",
			Name:      "decisions_blocked_total",
			Help:      "Total decisions blocked by learned clauses",
		},
	)

	// backjumpDepth measures how many levels each backjump discards.
	backjumpDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "decisiontrace",
			Subsystem: "conflict",
			Name:      "backjump_depth",
			Help:      "Distribution of levels discarded per backjump",
			Buckets:   []float64{0, 1, 2, 3, 5, 7, 10, 15, 20, 30},
		},
	)

	// invalidatedSteps measures how many steps each rollback invalidates.
	invalidatedSteps = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "decisiontrace",
			Subsystem: "conflict",
			Name:      "invalidated_steps",
			Help:      "Distribution of planning steps invalidated per rollback",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	// popsTotal counts rollback operations.
	popsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "decisiontrace",
			Subsystem: "conflict",
			Name:      "pops_total",
			Help:      "Total rollback operations",
		},
	)

	// decisionLevelGauge tracks the current decision level (-1 when empty).
	decisionLevelGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "decisiontrace",
			Subsystem: "conflict",
			Name:      "decision_level",
			Help:      "Current decision level of the active session",
		},
	)
)
