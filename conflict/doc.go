// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package conflict provides conflict-driven decision tracking for a
// step-structured planner.
//
// # Architecture Overview
//
// The planner driver resolves open decision points (for example, typed holes
// in a specification) one step at a time. Each resolution is a Literal.
// Some literal combinations are only discovered to be incompatible after
// downstream validation fails; the tracker's job is to remember those
// combinations and to compute the minimal rollback that escapes them.
//
//	┌──────────────────────────────────────────────────────────────┐
//	│                       PLANNER DRIVER                         │
//	│        (proposes literals, reports downstream failures)      │
//	└──────────────────────────────┬───────────────────────────────┘
//	                               │
//	                               │ Propose / Commit / HandleFailure
//	                               ▼
//	┌──────────────────────────────────────────────────────────────┐
//	│                          Session                             │
//	│                                                              │
//	│  ┌──────────────────┐        ┌─────────────────────────────┐ │
//	│  │   ClauseStore    │        │      ImplicationGraph       │ │
//	│  │  learned clauses │        │  decision history (arena)   │ │
//	│  │  WouldConflict   │        │  literal → level index      │ │
//	│  └──────────────────┘        │  BackjumpTarget, PopToLevel │ │
//	│                              └─────────────────────────────┘ │
//	└──────────────────────────────────────────────────────────────┘
//
// # Core Concepts
//
// ## Decision Level
//
// Every Commit pushes one decision level: all literals committed together
// share a level, and levels increase by exactly one per commit. Levels are
// the unit of rollback.
//
// ## Learned Clause
//
// A Clause records a set of literals proven incompatible, with a
// human-readable explanation. Clauses are learned from hard failure reports
// and never forgotten by default; WouldConflict blocks any candidate
// decision that would reproduce a learned clause.
//
// ## Backjump
//
// When a conflict is reported, the tracker computes the level just below the
// highest level implicated by the conflicting clause. Popping to that level
// removes the offending literal while preserving every earlier, still-valid
// decision. The pop returns the planning steps whose decisions were
// discarded so the driver can replan them.
//
// # Thread Safety
//
// A planning session is sequential by construction: decisions causally
// depend on prior decisions. One Session (and its ClauseStore and
// ImplicationGraph) is exclusively owned by one planner goroutine; none of
// the types in this package are safe for concurrent use. Concurrent
// planning sessions must each own an independent Session.
//
// # Usage Example
//
//	sess := conflict.NewSession(nil, logger)
//
//	level, _, err := sess.Commit(ctx, "s1", []conflict.Literal{"h1:opt_a"})
//	if err != nil {
//	    return err
//	}
//
//	// Downstream validation fails and reports a reason string.
//	bj, err := sess.HandleFailure(ctx, "s2",
//	    "execution failed; blocked_by: h1:opt_a, h2:opt_b")
//	if err != nil {
//	    return err
//	}
//	for _, step := range bj.InvalidatedSteps {
//	    replan(step)
//	}
package conflict
