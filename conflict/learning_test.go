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
	"errors"
	"testing"
)

// TestSession_ConflictLearningLifecycle walks one full plan/fail/learn/
// backjump/replan cycle the way the planner driver uses the tracker.
func TestSession_ConflictLearningLifecycle(t *testing.T) {
	ctx := context.Background()
	sess := NewSession(nil, discardLogger())

	// Step s1 resolves hole h1; step s2 resolves hole h2.
	level, _, err := sess.Commit(ctx, "s1", []Literal{"h1:opt_a"})
	if err != nil || level != 0 {
		t.Fatalf("commit s1: level=%d err=%v, want 0,nil", level, err)
	}
	level, _, err = sess.Commit(ctx, "s2", []Literal{"h2:opt_b"})
	if err != nil || level != 1 {
		t.Fatalf("commit s2: level=%d err=%v, want 1,nil", level, err)
	}

	// Downstream validation discovers the two choices are incompatible.
	bj, err := sess.HandleFailure(ctx, "s2",
		"incompatible options; blocked_by: h1:opt_a, h2:opt_b")
	if err != nil {
		t.Fatalf("HandleFailure failed: %v", err)
	}
	if bj == nil {
		t.Fatal("expected a backjump for a structured failure")
	}
	if bj.TargetLevel != 0 {
		t.Errorf("target level = %d, want 0", bj.TargetLevel)
	}
	if len(bj.InvalidatedSteps) != 1 || bj.InvalidatedSteps[0] != "s2" {
		t.Errorf("invalidated = %v, want [s2]", bj.InvalidatedSteps)
	}

	// The earlier decision survives the rollback.
	if lvl, ok := sess.Graph().LevelOf("h1:opt_a"); !ok || lvl != 0 {
		t.Errorf("h1:opt_a: level=%d ok=%v, want 0,true", lvl, ok)
	}
	if _, ok := sess.Graph().LevelOf("h2:opt_b"); ok {
		t.Error("h2:opt_b must be unassigned after the backjump")
	}

	// Replanning s2 with the dead-end option is now rejected up front.
	_, _, err = sess.Commit(ctx, "s2", []Literal{"h2:opt_b"})
	if !errors.Is(err, ErrDecisionBlocked) {
		t.Fatalf("recommitting the learned dead end: err=%v, want ErrDecisionBlocked", err)
	}

	// A different option for the same hole goes through.
	level, _, err = sess.Commit(ctx, "s2", []Literal{"h2:opt_c"})
	if err != nil {
		t.Fatalf("commit of alternative failed: %v", err)
	}
	if level != 1 {
		t.Errorf("replanned commit level = %d, want 1", level)
	}
}

// TestSession_DeepBackjump exercises a conflict whose clause implicates
// only early levels, discarding several unrelated later decisions.
func TestSession_DeepBackjump(t *testing.T) {
	ctx := context.Background()
	sess := NewSession(nil, discardLogger())

	steps := []struct {
		step StepID
		lit  Literal
	}{
		{"s1", "h1:a"}, // level 0
		{"s2", "h2:b"}, // level 1
		{"s3", "h3:c"}, // level 2
		{"s4", "h4:d"}, // level 3
	}
	for _, st := range steps {
		if _, _, err := sess.Commit(ctx, st.step, []Literal{st.lit}); err != nil {
			t.Fatalf("commit %s: %v", st.step, err)
		}
	}

	// The conflict implicates levels 0 and 1 only; everything above the
	// target falls regardless.
	bj, err := sess.HandleFailure(ctx, "s4", "late failure; blocked_by: h1:a, h2:b")
	if err != nil {
		t.Fatalf("HandleFailure failed: %v", err)
	}
	if bj.TargetLevel != 0 {
		t.Errorf("target level = %d, want 0", bj.TargetLevel)
	}
	want := []StepID{"s4", "s3", "s2"}
	if len(bj.InvalidatedSteps) != len(want) {
		t.Fatalf("invalidated = %v, want %v", bj.InvalidatedSteps, want)
	}
	for i, step := range want {
		if bj.InvalidatedSteps[i] != step {
			t.Errorf("invalidated[%d] = %s, want %s", i, bj.InvalidatedSteps[i], step)
		}
	}
	if sess.Graph().CurrentLevel() != 0 {
		t.Errorf("level after backjump = %d, want 0", sess.Graph().CurrentLevel())
	}
}

// TestSession_RepeatedFailuresNeverRevisit verifies that every learned
// dead end stays blocked as the driver keeps replanning.
func TestSession_RepeatedFailuresNeverRevisit(t *testing.T) {
	ctx := context.Background()
	sess := NewSession(nil, discardLogger())

	if _, _, err := sess.Commit(ctx, "s1", []Literal{"h1:a"}); err != nil {
		t.Fatalf("commit s1: %v", err)
	}

	options := []Literal{"h2:x", "h2:y", "h2:z"}
	for i, opt := range options[:2] {
		if _, _, err := sess.Commit(ctx, "s2", []Literal{opt}); err != nil {
			t.Fatalf("attempt %d: commit: %v", i, err)
		}
		if _, err := sess.HandleFailure(ctx, "s2",
			"failed; blocked_by: h1:a, "+string(opt)); err != nil {
			t.Fatalf("attempt %d: HandleFailure: %v", i, err)
		}
	}

	// Both burned options stay blocked.
	for _, opt := range options[:2] {
		if _, _, err := sess.Commit(ctx, "s2", []Literal{opt}); !errors.Is(err, ErrDecisionBlocked) {
			t.Errorf("option %s: err=%v, want ErrDecisionBlocked", opt, err)
		}
	}
	if sess.Store().Len() != 2 {
		t.Errorf("store holds %d clauses, want 2", sess.Store().Len())
	}

	// The remaining option still works.
	if _, _, err := sess.Commit(ctx, "s2", []Literal{options[2]}); err != nil {
		t.Fatalf("final option: %v", err)
	}
}
