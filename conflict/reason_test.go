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
	"reflect"
	"testing"
)

func TestExtractReasonLiterals(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		want   []Literal
	}{
		{
			name:   "marker with spaced literals",
			reason: "x failed; blocked_by: a, b ,c",
			want:   []Literal{"a", "b", "c"},
		},
		{
			name:   "no marker yields nothing",
			reason: "x failed, no info",
			want:   nil,
		},
		{
			name:   "typical hole-resolution report",
			reason: "execution failed after resolving holes; blocked_by: hole_a:opt1, hole_b:opt3",
			want:   []Literal{"hole_a:opt1", "hole_b:opt3"},
		},
		{
			name:   "marker at the start",
			reason: "blocked_by: only",
			want:   []Literal{"only"},
		},
		{
			name:   "empty pieces are discarded",
			reason: "blocked_by: a,, ,b,",
			want:   []Literal{"a", "b"},
		},
		{
			name:   "marker with nothing after it",
			reason: "failed; blocked_by:",
			want:   nil,
		},
		{
			name:   "empty reason",
			reason: "",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReasonLiterals(tt.reason)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractReasonLiterals(%q) = %v, want %v", tt.reason, got, tt.want)
			}
		})
	}
}
