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

import "errors"

var (
	// ErrNilContext is returned when a nil context is passed to a
	// session operation.
	ErrNilContext = errors.New("context must not be nil")

	// ErrLiteralActive is returned when a push would assign a literal
	// that is already active. Pushing a duplicate literal is a caller
	// contract violation, not a recoverable condition; the push is
	// rejected before any mutation.
	ErrLiteralActive = errors.New("literal is already active")

	// ErrDecisionBlocked is returned when a commit would reproduce a
	// learned clause.
	ErrDecisionBlocked = errors.New("decision violates a learned clause")
)

// TrackerError wraps an error with the tracker operation that produced it.
type TrackerError struct {
	Op  string
	Err error
}

func (e *TrackerError) Error() string {
	return "conflict." + e.Op + ": " + e.Err.Error()
}

func (e *TrackerError) Unwrap() error {
	return e.Err
}
