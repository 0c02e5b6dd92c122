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
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var sessionTracer = otel.Tracer("decisiontrace.conflict")

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// Config configures a planning session's conflict tracking.
type Config struct {
	// Store configures the learned clause store.
	Store StoreConfig
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() *Config {
	return &Config{Store: *DefaultStoreConfig()}
}

// -----------------------------------------------------------------------------
// Backjump
// -----------------------------------------------------------------------------

// Backjump describes the outcome of folding a reported conflict back into
// the tracker: the clause that was learned, the level the history was
// rolled back to, and the steps whose decisions were discarded.
type Backjump struct {
	// Clause is the newly learned clause.
	Clause *Clause

	// TargetLevel is the decision level the history was rolled back to.
	TargetLevel int

	// InvalidatedSteps are the steps the driver must replan, in the
	// order their decisions were discarded.
	InvalidatedSteps []StepID
}

// -----------------------------------------------------------------------------
// Session
// -----------------------------------------------------------------------------

// Session ties one ClauseStore and one ImplicationGraph together as the
// conflict-tracking surface of a single planning session. The driver
// proposes literal sets before committing, commits them step by step, and
// reports downstream failures; the session learns clauses from those
// failures and computes the rollback that escapes them.
//
// Thread Safety: Not safe for concurrent use. A planning session is
// sequential by construction; concurrent sessions must each own an
// independent Session.
type Session struct {
	// ID uniquely identifies this session in logs and traces.
	ID string

	cfg    *Config
	logger *slog.Logger
	store  *ClauseStore
	graph  *ImplicationGraph
}

// NewSession creates a session with an empty clause store and an empty
// decision history. A nil cfg selects DefaultConfig; a nil logger selects
// slog.Default.
func NewSession(cfg *Config, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With(slog.String("session_id", id))
	return &Session{
		ID:     id,
		cfg:    cfg,
		logger: logger,
		store:  NewClauseStore(&cfg.Store, logger),
		graph:  NewImplicationGraph(),
	}
}

// Propose checks whether committing the candidate literals would violate a
// learned clause, without committing anything. It returns false and the
// blocking clause when the combination reproduces a known conflict.
func (s *Session) Propose(ctx context.Context, step StepID, literals []Literal) (bool, *Clause, error) {
	if ctx == nil {
		return false, nil, &TrackerError{Op: "Propose", Err: ErrNilContext}
	}
	_, span := sessionTracer.Start(ctx, "conflict.Propose",
		trace.WithAttributes(
			attribute.String("step", string(step)),
			attribute.Int("literals", len(literals)),
		),
	)
	defer span.End()

	blocked, clause := s.store.WouldConflict(s.graph.AssignedLiterals(), literals)
	if blocked {
		span.SetAttributes(attribute.String("blocked_by", clause.ID))
		s.logger.Debug("decision blocked by learned clause",
			slog.String("step", string(step)),
			slog.String("clause", clause.String()),
		)
		return false, clause, nil
	}
	return true, nil, nil
}

// Commit runs the Propose check and, if clear, pushes one decision level
// with the given literals. It returns the new level and the created nodes
// for the driver's bookkeeping.
//
// A commit that would reproduce a learned clause fails with
// ErrDecisionBlocked; a commit containing an already-active literal fails
// with ErrLiteralActive. Neither mutates the history.
func (s *Session) Commit(ctx context.Context, step StepID, literals []Literal) (int, []DecisionNode, error) {
	if ctx == nil {
		return s.graph.CurrentLevel(), nil, &TrackerError{Op: "Commit", Err: ErrNilContext}
	}
	ctx, span := sessionTracer.Start(ctx, "conflict.Commit",
		trace.WithAttributes(
			attribute.String("step", string(step)),
			attribute.Int("literals", len(literals)),
		),
	)
	defer span.End()

	ok, clause, err := s.Propose(ctx, step, literals)
	if err != nil {
		return s.graph.CurrentLevel(), nil, err
	}
	if !ok {
		err := &TrackerError{
			Op:  "Commit",
			Err: fmt.Errorf("%w: %s (%s)", ErrDecisionBlocked, clause.String(), clause.Explanation),
		}
		span.SetStatus(codes.Error, err.Error())
		return s.graph.CurrentLevel(), nil, err
	}

	level, nodes, err := s.graph.PushDecision(step, literals)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return level, nil, err
	}
	span.SetAttributes(attribute.Int("level", level))
	decisionLevelGauge.Set(float64(level))
	s.logger.Debug("decision committed",
		slog.String("step", string(step)),
		slog.Int("level", level),
		slog.Int("literals", len(literals)),
	)
	return level, nodes, nil
}

// HandleFailure folds an externally reported failure back into the
// tracker. The reason string is scanned for the blocked_by: marker; the
// implicated literals are filtered to those currently assigned. When none
// survive, the failure carries no structured conflict data and the method
// returns a nil Backjump: there is nothing to learn and nothing to roll
// back.
//
// Otherwise a clause over the surviving literals is learned, the backjump
// target is computed, the history is rolled back, and the invalidated
// steps are returned for replanning.
func (s *Session) HandleFailure(ctx context.Context, step StepID, reason string) (*Backjump, error) {
	if ctx == nil {
		return nil, &TrackerError{Op: "HandleFailure", Err: ErrNilContext}
	}
	_, span := sessionTracer.Start(ctx, "conflict.HandleFailure",
		trace.WithAttributes(attribute.String("step", string(step))),
	)
	defer span.End()

	var assigned []Literal
	for _, lit := range ExtractReasonLiterals(reason) {
		if _, ok := s.graph.LevelOf(lit); ok {
			assigned = append(assigned, lit)
		}
	}
	if len(assigned) == 0 {
		span.SetAttributes(attribute.Bool("structured", false))
		s.logger.Debug("failure carries no structured conflict data",
			slog.String("step", string(step)),
		)
		return nil, nil
	}

	clause := NewClause(assigned, reason)
	s.store.add(clause, "reported")

	fromLevel := s.graph.CurrentLevel()
	target := s.graph.BackjumpTarget(clause)
	steps := s.graph.PopToLevel(target)

	popsTotal.Inc()
	backjumpDepth.Observe(float64(fromLevel - target))
	invalidatedSteps.Observe(float64(len(steps)))
	decisionLevelGauge.Set(float64(s.graph.CurrentLevel()))

	span.SetAttributes(
		attribute.Bool("structured", true),
		attribute.Int("target_level", target),
		attribute.Int("invalidated_steps", len(steps)),
	)
	s.logger.Info("backjump after reported conflict",
		slog.String("step", string(step)),
		slog.String("clause", clause.String()),
		slog.Int("from_level", fromLevel),
		slog.Int("target_level", target),
		slog.Int("invalidated_steps", len(steps)),
	)

	return &Backjump{
		Clause:           clause,
		TargetLevel:      target,
		InvalidatedSteps: steps,
	}, nil
}

// Reset discards the session's decision history. Learned clauses are kept:
// they record conflicts proven for the session's literal space and remain
// valid across restarts of the search.
func (s *Session) Reset(ctx context.Context) error {
	if ctx == nil {
		return &TrackerError{Op: "Reset", Err: ErrNilContext}
	}
	_, span := sessionTracer.Start(ctx, "conflict.Reset")
	defer span.End()

	s.graph.Reset()
	decisionLevelGauge.Set(-1)
	s.logger.Info("decision history reset",
		slog.Int("clauses_kept", s.store.Len()),
	)
	return nil
}

// Graph exposes the session's implication graph for introspection calls
// such as LevelOf and AssignedLiterals.
func (s *Session) Graph() *ImplicationGraph {
	return s.graph
}

// Store exposes the session's clause store.
func (s *Session) Store() *ClauseStore {
	return s.store
}
