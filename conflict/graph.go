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

import "fmt"

// -----------------------------------------------------------------------------
// ImplicationGraph
// -----------------------------------------------------------------------------

// ImplicationGraph is the mutable decision history of a planning session:
// an arena of DecisionNodes ordered by non-decreasing decision level, plus
// a reverse index from each active literal to its arena position.
//
// Invariants:
//   - nodes is sorted by non-decreasing level; levels increase by exactly
//     one per PushDecision and only decrease via PopToLevel.
//   - the index holds exactly the literals present in nodes.
//   - currentLevel equals the level of the last node, or -1 when empty.
//
// Thread Safety: Not safe for concurrent use. An ImplicationGraph is
// exclusively owned by one planning session.
type ImplicationGraph struct {
	nodes        []DecisionNode
	index        map[Literal]int
	currentLevel int
}

// NewImplicationGraph creates an empty implication graph at level -1.
func NewImplicationGraph() *ImplicationGraph {
	g := &ImplicationGraph{}
	g.Reset()
	return g
}

// Reset clears all nodes and the literal index and returns the graph to
// level -1. Learned clauses live in the ClauseStore and are unaffected.
func (g *ImplicationGraph) Reset() {
	g.nodes = g.nodes[:0]
	g.index = make(map[Literal]int)
	g.currentLevel = -1
}

// PushDecision commits one decision: it opens a new decision level (exactly
// one above the current) and assigns every literal in literals at that
// level, attributed to step.
//
// Pushing a literal that is already active is a caller contract violation;
// the push is rejected with ErrLiteralActive before any mutation, so a
// failed push leaves the graph unchanged.
//
// Outputs:
//   - int: the new decision level.
//   - []DecisionNode: the created nodes, in literal order.
//   - error: non-nil only on a duplicate-literal contract violation.
func (g *ImplicationGraph) PushDecision(step StepID, literals []Literal) (int, []DecisionNode, error) {
	return g.push(step, literals, nil)
}

// PushImplied is PushDecision with a recorded antecedent: the learned
// clause that justified or forced this assignment. Used for provenance
// only; the antecedent does not alter level bookkeeping.
func (g *ImplicationGraph) PushImplied(step StepID, literals []Literal, antecedent *Clause) (int, []DecisionNode, error) {
	return g.push(step, literals, antecedent)
}

func (g *ImplicationGraph) push(step StepID, literals []Literal, antecedent *Clause) (int, []DecisionNode, error) {
	seen := make(map[Literal]bool, len(literals))
	for _, lit := range literals {
		if _, active := g.index[lit]; active || seen[lit] {
			return g.currentLevel, nil, &TrackerError{
				Op:  "PushDecision",
				Err: fmt.Errorf("%w: %q", ErrLiteralActive, lit),
			}
		}
		seen[lit] = true
	}

	g.currentLevel++
	created := make([]DecisionNode, 0, len(literals))
	for _, lit := range literals {
		node := DecisionNode{
			Literal:    lit,
			Step:       step,
			Level:      g.currentLevel,
			Antecedent: antecedent,
		}
		g.index[lit] = len(g.nodes)
		g.nodes = append(g.nodes, node)
		created = append(created, node)
	}
	return g.currentLevel, created, nil
}

// AssignedLiterals returns a fresh set of the currently active literals.
func (g *ImplicationGraph) AssignedLiterals() map[Literal]bool {
	assigned := make(map[Literal]bool, len(g.index))
	for lit := range g.index {
		assigned[lit] = true
	}
	return assigned
}

// LevelOf returns the decision level at which the literal was assigned.
// The second return is false when the literal is not currently active;
// callers must treat an absent literal as not a factor in any backjump
// computation.
func (g *ImplicationGraph) LevelOf(lit Literal) (int, bool) {
	pos, ok := g.index[lit]
	if !ok {
		return 0, false
	}
	return g.nodes[pos].Level, true
}

// BackjumpTarget computes the rollback level that escapes the given
// conflicting clause: one level below the highest level among the clause's
// currently assigned literals, clamped at zero. The clause became violated
// precisely because the literal at the highest level was added; retreating
// just below that level is the minimal rollback that removes it while
// preserving every earlier decision.
//
// When none of the clause's literals are currently assigned there is no
// level information to target a narrower rollback, so the maximally
// conservative level 0 is returned.
func (g *ImplicationGraph) BackjumpTarget(clause *Clause) int {
	highest := -1
	for _, lit := range clause.Literals {
		if lvl, ok := g.LevelOf(lit); ok && lvl > highest {
			highest = lvl
		}
	}
	if highest <= 0 {
		return 0
	}
	return highest - 1
}

// PopToLevel rolls the history back to the given level: every node with a
// level strictly greater than level is removed, newest first, and the
// distinct steps that produced removed nodes are returned in the order
// each step's last node was encountered during the pop. These are the
// steps the driver must replan.
//
// Popping to the current level or beyond is a vacuous no-op. Levels below
// -1 are treated as -1 (full clear).
func (g *ImplicationGraph) PopToLevel(level int) []StepID {
	if level >= g.currentLevel {
		return nil
	}
	if level < -1 {
		level = -1
	}

	cut := len(g.nodes)
	var invalidated []StepID
	seen := make(map[StepID]bool)
	for cut > 0 && g.nodes[cut-1].Level > level {
		node := g.nodes[cut-1]
		delete(g.index, node.Literal)
		if !seen[node.Step] {
			seen[node.Step] = true
			invalidated = append(invalidated, node.Step)
		}
		cut--
	}
	g.nodes = g.nodes[:cut]
	g.currentLevel = level
	return invalidated
}

// CurrentLevel returns the highest decision level reached, or -1 when the
// graph is empty.
func (g *ImplicationGraph) CurrentLevel() int {
	return g.currentLevel
}

// Len returns the number of decision nodes in the history.
func (g *ImplicationGraph) Len() int {
	return len(g.nodes)
}

// NodeAt returns the i-th node in history order.
func (g *ImplicationGraph) NodeAt(i int) DecisionNode {
	return g.nodes[i]
}

// checkInvariants verifies the graph's structural invariants. Used by
// health checks and property tests.
func (g *ImplicationGraph) checkInvariants() error {
	prev := -1
	for i, node := range g.nodes {
		if node.Level < prev {
			return fmt.Errorf("node %d: level %d below predecessor level %d", i, node.Level, prev)
		}
		prev = node.Level
		pos, ok := g.index[node.Literal]
		if !ok {
			return fmt.Errorf("literal %q present in history but missing from index", node.Literal)
		}
		if pos != i {
			return fmt.Errorf("literal %q indexed at %d, found at %d", node.Literal, pos, i)
		}
	}
	if len(g.index) != len(g.nodes) {
		return fmt.Errorf("index holds %d literals for %d nodes", len(g.index), len(g.nodes))
	}
	if len(g.nodes) > 0 && g.currentLevel < g.nodes[len(g.nodes)-1].Level {
		return fmt.Errorf("current level %d below last node level %d", g.currentLevel, g.nodes[len(g.nodes)-1].Level)
	}
	return nil
}
