// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Run("json output includes service attribute", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Service: "planner", JSON: true, Output: &buf})

		logger.Info("clause learned", "clause_id", "c1")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if entry["service"] != "planner" {
			t.Errorf("service = %v, want planner", entry["service"])
		}
		if entry["clause_id"] != "c1" {
			t.Errorf("clause_id = %v, want c1", entry["clause_id"])
		}
		if entry["msg"] != "clause learned" {
			t.Errorf("msg = %v", entry["msg"])
		}
	})

	t.Run("level filter drops debug at info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelInfo, Output: &buf})

		logger.Debug("suppressed")
		logger.Info("kept")

		out := buf.String()
		if strings.Contains(out, "suppressed") {
			t.Error("debug message leaked through info filter")
		}
		if !strings.Contains(out, "kept") {
			t.Error("info message missing")
		}
	})

	t.Run("error level filters warn", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelError, Output: &buf})

		logger.Warn("suppressed")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("text output by default", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Output: &buf})

		logger.Info("hello")
		if !strings.Contains(buf.String(), "msg=hello") {
			t.Errorf("expected text format, got %q", buf.String())
		}
	})
}

func TestDiscard(t *testing.T) {
	// Must not panic and must accept all levels.
	logger := Discard()
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
}
