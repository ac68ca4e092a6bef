package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// LogSink appends events as JSON lines to a single file so users can inspect
// what the engine did even after the process exits.
type LogSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewLogSink creates (or reuses) the event log at path, creating parent
// directories as needed.
func NewLogSink(path string) (*LogSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("events: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("events: open log file: %w", err)
	}
	return &LogSink{file: f}, nil
}

// Emit writes the event as one JSON line. Write errors are dropped: event
// delivery is fire-and-forget and must never disturb the engine.
func (s *LogSink) Emit(ev Event) {
	if s == nil || s.file == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file.Write(append(data, '\n'))
}

// Close releases the file handle.
func (s *LogSink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}
