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

import "strings"

// ReasonMarker is the substring that introduces a comma-separated literal
// list in a free-text failure reason. It is the sole textual contract
// between the driver's failure reporting and the structured learning core.
const ReasonMarker = "blocked_by:"

// ExtractReasonLiterals recovers the literals implicated by a free-text
// blocking reason, e.g.
//
//	"execution failed after resolving holes; blocked_by: hole_a:opt1, hole_b:opt3"
//
// Everything before the marker is ignored. After the marker the text is
// split on commas, each piece is trimmed, and empty pieces are discarded;
// the surviving literals are returned in left-to-right order.
//
// A reason without the marker yields nil: most ordinary failures carry no
// structured conflict data, and that is the expected case, not an error.
// No validation is performed against currently assigned literals; that
// check belongs to the caller before constructing a new Clause.
func ExtractReasonLiterals(reason string) []Literal {
	_, rest, found := strings.Cut(reason, ReasonMarker)
	if !found {
		return nil
	}

	var literals []Literal
	for _, piece := range strings.Split(rest, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		literals = append(literals, Literal(piece))
	}
	return literals
}
