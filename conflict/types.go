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
	"strings"
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Identifiers
// -----------------------------------------------------------------------------

// Literal is an opaque token naming one candidate resolution for one
// decision point. Literals must be globally unique within a planning
// session: two decision points may only produce the same literal when they
// are semantically the same choice. The recommended (but not enforced)
// convention is "<step>:<option>", e.g. "hole_a:opt1".
type Literal string

// StepID identifies the planning step that produced a decision. It is an
// opaque handle chosen by the driver.
type StepID string

// -----------------------------------------------------------------------------
// Clause
// -----------------------------------------------------------------------------

// Clause records a combination of literals that has been proven
// incompatible: the literals in Literals must not all be simultaneously
// active. Order within Literals carries no semantic meaning but is
// preserved for display and debugging.
//
// Thread Safety: Clause is immutable after creation except for the usage
// counters, which are maintained by the owning ClauseStore.
type Clause struct {
	// ID is the unique clause identifier.
	ID string

	// Literals are the literals that must not all be active together.
	Literals []Literal

	// Explanation is the human-readable reason this combination is bad.
	Explanation string

	// LearnedAt is when this clause was created (Unix milliseconds UTC).
	LearnedAt int64

	// UseCount tracks how often this clause has blocked a decision.
	UseCount int64

	// LastUsed is when this clause last blocked a decision
	// (Unix milliseconds UTC). Zero if it never has.
	LastUsed int64
}

// NewClause creates a clause over the given literals.
//
// The literal slice is copied; the caller may reuse it afterwards.
func NewClause(literals []Literal, explanation string) *Clause {
	lits := make([]Literal, len(literals))
	copy(lits, literals)
	return &Clause{
		ID:          uuid.NewString(),
		Literals:    lits,
		Explanation: explanation,
		LearnedAt:   time.Now().UnixMilli(),
	}
}

// String renders the clause for logs and block reasons.
func (c *Clause) String() string {
	if len(c.Literals) == 0 {
		return "¬(empty)"
	}
	lits := make([]string, len(c.Literals))
	for i, lit := range c.Literals {
		lits[i] = string(lit)
	}
	return "¬(" + strings.Join(lits, " ∧ ") + ")"
}

// ViolatedBy reports whether every literal of the clause is present in the
// given assignment, i.e. the assignment reproduces the proven-bad
// combination.
func (c *Clause) ViolatedBy(assignment map[Literal]bool) bool {
	for _, lit := range c.Literals {
		if !assignment[lit] {
			return false
		}
	}
	return true
}

// subsumes reports whether c's literal set is a subset of other's. A
// subsuming clause blocks strictly more assignments, so the subsumed clause
// is redundant.
func (c *Clause) subsumes(other *Clause) bool {
	if len(c.Literals) > len(other.Literals) {
		return false
	}
	set := make(map[Literal]bool, len(other.Literals))
	for _, lit := range other.Literals {
		set[lit] = true
	}
	for _, lit := range c.Literals {
		if !set[lit] {
			return false
		}
	}
	return true
}

// -----------------------------------------------------------------------------
// DecisionNode
// -----------------------------------------------------------------------------

// DecisionNode records one literal becoming active: which step assigned it,
// at which decision level, and (optionally) which learned clause triggered
// the assignment.
type DecisionNode struct {
	// Literal is the literal that became active.
	Literal Literal

	// Step is the planning step that produced this literal.
	Step StepID

	// Level is the decision level at which the literal was assigned.
	Level int

	// Antecedent is the learned clause that justified or triggered this
	// assignment, if any. Nil for a free decision.
	Antecedent *Clause
}
