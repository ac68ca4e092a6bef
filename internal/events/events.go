// Package events provides the fire-and-forget structured event stream that the
// execution engine emits after every command execution, hook execution, and
// recovery attempt. Events are produced here and consumed elsewhere; nothing in
// this package reads them back.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies what kind of event occurred.
type Type string

const (
	TypeCommandExecuted   Type = "command_executed"
	TypeCommandFailed     Type = "command_failed"
	TypeHookStarted       Type = "hook_started"
	TypeHookCompleted     Type = "hook_completed"
	TypeHookFailed        Type = "hook_failed"
	TypeHookSkipped       Type = "hook_skipped"
	TypeRecoveryAttempted      Type = "recovery_attempted"
	TypeRecoveryEscalated      Type = "recovery_escalated"
	TypeRecoveryCommandSkipped Type = "recovery_command_skipped"
)

// Event is a single structured record. Fields carry event-specific context
// (command name, duration, classified error type, task id) for external trace
// assembly.
type Event struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Sink receives emitted events. Implementations must not block the caller for
// long; delivery failures are swallowed, never surfaced to the engine.
type Sink interface {
	Emit(Event)
}

// Emit constructs an event with a fresh id and timestamp and delivers it to the
// sink. A nil sink is allowed and drops the event, so callers never need to
// guard emission.
func Emit(s Sink, t Type, fields map[string]any) {
	if s == nil {
		return
	}
	s.Emit(Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now(),
		Fields:    fields,
	})
}
