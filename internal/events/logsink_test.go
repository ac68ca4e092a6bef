package events

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestEmitNilSink(t *testing.T) {
	// Emission must be safe without a sink.
	Emit(nil, TypeCommandExecuted, map[string]any{"name": "cache-rebuild"})
}

func TestLogSinkWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "events.jsonl")
	sink, err := NewLogSink(path)
	if err != nil {
		t.Fatalf("NewLogSink: %v", err)
	}

	Emit(sink, TypeCommandExecuted, map[string]any{"name": "cache-rebuild", "success": true})
	Emit(sink, TypeHookFailed, map[string]any{"index": 2})
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var parsed []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		parsed = append(parsed, ev)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 events, got %d", len(parsed))
	}
	if parsed[0].Type != TypeCommandExecuted || parsed[1].Type != TypeHookFailed {
		t.Errorf("unexpected event types: %+v", parsed)
	}
	if parsed[0].ID == "" || parsed[0].ID == parsed[1].ID {
		t.Error("expected unique non-empty event ids")
	}
	if parsed[0].Timestamp.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if parsed[0].Fields["name"] != "cache-rebuild" {
		t.Errorf("expected fields to round-trip, got %v", parsed[0].Fields)
	}
}

func TestLogSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")

	for i := 0; i < 2; i++ {
		sink, err := NewLogSink(path)
		if err != nil {
			t.Fatalf("NewLogSink: %v", err)
		}
		Emit(sink, TypeRecoveryAttempted, nil)
		sink.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("expected events from both sessions, got %d lines", lines)
	}
}
