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
	"context"
	"fmt"

	"github.com/AleutianAI/decisiontrace/eval"
)

// -----------------------------------------------------------------------------
// Evaluable Implementation
// -----------------------------------------------------------------------------

// Name returns the component name for metrics and logging.
func (s *Session) Name() string {
	return "conflict_tracker"
}

// Properties returns the correctness properties of the tracker. The checks
// run against the session's live state; input/output arguments are used
// where the property is an input/output relation.
func (s *Session) Properties() []eval.Property {
	return []eval.Property{
		{
			Name:        "level_monotonic",
			Description: "History levels are non-decreasing and grow by one per commit",
			Check: func(input, output any) error {
				return s.graph.checkInvariants()
			},
		},
		{
			Name:        "index_consistent",
			Description: "The literal index holds exactly the literals present in history",
			Check: func(input, output any) error {
				assigned := s.graph.AssignedLiterals()
				if len(assigned) != s.graph.Len() {
					return fmt.Errorf("%w: %d assigned literals for %d nodes",
						eval.ErrPropertyFailed, len(assigned), s.graph.Len())
				}
				return s.graph.checkInvariants()
			},
		},
		{
			Name:        "backjump_below_conflict",
			Description: "A backjump lands strictly below the highest implicated level, or at zero",
			Check: func(input, output any) error {
				bj, ok := output.(*Backjump)
				if !ok || bj == nil {
					return nil
				}
				for _, lit := range bj.Clause.Literals {
					if lvl, assigned := s.graph.LevelOf(lit); assigned && lvl > bj.TargetLevel {
						return fmt.Errorf("%w: literal %q still assigned at level %d above target %d",
							eval.ErrPropertyFailed, lit, lvl, bj.TargetLevel)
					}
				}
				if bj.TargetLevel < 0 {
					return fmt.Errorf("%w: negative backjump target %d",
						eval.ErrPropertyFailed, bj.TargetLevel)
				}
				return nil
			},
		},
	}
}

// Metrics returns the metrics the tracker exposes.
func (s *Session) Metrics() []eval.MetricDefinition {
	return []eval.MetricDefinition{
		{
			Name:        "decisiontrace_conflict_clauses_learned_total",
			Type:        eval.MetricCounter,
			Description: "Total learned clauses by source",
		},
		{
			Name:        "decisiontrace_conflict_decisions_blocked_total",
			Type:        eval.MetricCounter,
			Description: "Decisions blocked by learned clauses",
		},
		{
			Name:        "decisiontrace_conflict_backjump_depth",
			Type:        eval.MetricHistogram,
			Description: "Levels discarded per backjump",
		},
		{
			Name:        "decisiontrace_conflict_invalidated_steps",
			Type:        eval.MetricHistogram,
			Description: "Planning steps invalidated per rollback",
		},
		{
			Name:        "decisiontrace_conflict_decision_level",
			Type:        eval.MetricGauge,
			Description: "Current decision level of the active session",
		},
	}
}

// HealthCheck verifies the session's structural invariants.
func (s *Session) HealthCheck(ctx context.Context) error {
	if ctx == nil {
		return &TrackerError{Op: "HealthCheck", Err: ErrNilContext}
	}
	if s.cfg == nil || s.store == nil || s.graph == nil {
		return fmt.Errorf("%w: session not initialized", eval.ErrHealthCheckFailed)
	}
	if err := s.graph.checkInvariants(); err != nil {
		return fmt.Errorf("%w: %v", eval.ErrHealthCheckFailed, err)
	}
	return nil
}
