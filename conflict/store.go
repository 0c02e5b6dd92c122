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
	"log/slog"
	"time"
)

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// StoreConfig configures the clause store. The zero value preserves the
// reference behavior: unbounded growth, no deduplication.
type StoreConfig struct {
	// MaxClauses bounds the store when positive. On overflow the least
	// recently used clause is evicted. Zero means unbounded.
	MaxClauses int

	// DropSubsumed enables subsumption checks on Add: an incoming clause
	// already covered by a stored clause is dropped, and stored clauses
	// covered by the incoming one are removed.
	DropSubsumed bool
}

// DefaultStoreConfig returns the default store configuration.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{}
}

// -----------------------------------------------------------------------------
// ClauseStore
// -----------------------------------------------------------------------------

// ClauseStore owns the learned clauses of one planning session. It is
// append-only in its default configuration: clauses are added as conflicts
// are discovered and consulted before every commit, and are never removed
// unless the bounded-store extensions are enabled.
//
// Lifecycle: created empty once per session, destroyed with the session.
//
// Thread Safety: Not safe for concurrent use. A ClauseStore is exclusively
// owned by one planning session.
type ClauseStore struct {
	cfg     *StoreConfig
	logger  *slog.Logger
	clauses []*Clause
}

// NewClauseStore creates an empty clause store. A nil cfg selects
// DefaultStoreConfig; a nil logger selects slog.Default.
func NewClauseStore(cfg *StoreConfig, logger *slog.Logger) *ClauseStore {
	if cfg == nil {
		cfg = DefaultStoreConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ClauseStore{cfg: cfg, logger: logger}
}

// Add appends a learned clause. No deduplication is performed by default;
// adding a semantically identical clause twice is legal and merely wastes
// space. With DropSubsumed or MaxClauses set, the bounded-store extensions
// apply (see StoreConfig).
func (s *ClauseStore) Add(clause *Clause) {
	s.add(clause, "driver")
}

func (s *ClauseStore) add(clause *Clause, source string) {
	if s.cfg.DropSubsumed {
		for _, existing := range s.clauses {
			if existing.subsumes(clause) {
				clausesEvictedTotal.WithLabelValues("subsumed").Inc()
				s.logger.Debug("clause dropped: subsumed by stored clause",
					slog.String("clause", clause.String()),
					slog.String("subsumed_by", existing.ID),
				)
				return
			}
		}
		kept := s.clauses[:0]
		for _, existing := range s.clauses {
			if clause.subsumes(existing) {
				clausesEvictedTotal.WithLabelValues("subsumed").Inc()
				continue
			}
			kept = append(kept, existing)
		}
		s.clauses = kept
	}

	if s.cfg.MaxClauses > 0 && len(s.clauses) >= s.cfg.MaxClauses {
		s.evictLRU()
	}

	s.clauses = append(s.clauses, clause)
	clausesLearnedTotal.WithLabelValues(source).Inc()
	s.logger.Info("clause learned",
		slog.String("clause_id", clause.ID),
		slog.String("clause", clause.String()),
		slog.String("source", source),
		slog.Int("stored", len(s.clauses)),
	)
}

// evictLRU removes the clause that least recently blocked a decision,
// breaking ties by age.
func (s *ClauseStore) evictLRU() {
	victim := 0
	for i, c := range s.clauses {
		v := s.clauses[victim]
		if c.LastUsed < v.LastUsed || (c.LastUsed == v.LastUsed && c.LearnedAt < v.LearnedAt) {
			victim = i
		}
	}
	evicted := s.clauses[victim]
	s.clauses = append(s.clauses[:victim], s.clauses[victim+1:]...)
	clausesEvictedTotal.WithLabelValues("overflow").Inc()
	s.logger.Debug("clause evicted: store full",
		slog.String("clause_id", evicted.ID),
		slog.Int("max_clauses", s.cfg.MaxClauses),
	)
}

// WouldConflict reports whether committing the candidate literals, given
// everything already active, would reproduce a learned clause. It returns
// the first violated clause so the driver can log why the decision was
// blocked.
//
// The check is the membership test run before every commit: it combines
// active and candidate literals and scans the learned set for a clause
// whose literals are all present. Linear in stored clauses times clause
// size, which is acceptable at planner scale.
func (s *ClauseStore) WouldConflict(active map[Literal]bool, candidate []Literal) (bool, *Clause) {
	combined := make(map[Literal]bool, len(active)+len(candidate))
	for lit := range active {
		combined[lit] = true
	}
	for _, lit := range candidate {
		combined[lit] = true
	}

	for _, clause := range s.clauses {
		if clause.ViolatedBy(combined) {
			clause.UseCount++
			clause.LastUsed = time.Now().UnixMilli()
			decisionsBlockedTotal.Inc()
			return true, clause
		}
	}
	return false, nil
}

// Len returns the number of stored clauses.
func (s *ClauseStore) Len() int {
	return len(s.clauses)
}

// Clauses returns a copy of the stored clause list in learn order.
func (s *ClauseStore) Clauses() []*Clause {
	out := make([]*Clause, len(s.clauses))
	copy(out, s.clauses)
	return out
}
