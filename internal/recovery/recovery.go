// Package recovery matches reported task failures against an ordered strategy
// table and attempts bounded, automatic remediation through the command
// executor before a task is escalated.
package recovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jienckebd/devloop/internal/command"
	"github.com/jienckebd/devloop/internal/events"
)

// System holds the strategy table and the per-(task, strategy) attempt
// counters. One instance lives for the whole process; concurrent use across
// distinct task ids is safe, concurrent calls for the same task id are not.
type System struct {
	mu         sync.Mutex
	strategies []Strategy
	attempts   map[string]int

	exec    *command.Executor
	sink    events.Sink
	metrics *Metrics
}

// NewSystem creates a recovery system routing through exec. The sink may be
// nil.
func NewSystem(exec *command.Executor, sink events.Sink) *System {
	return &System{
		attempts: make(map[string]int),
		exec:     exec,
		sink:     sink,
		metrics:  NewMetrics(),
	}
}

// AddStrategy appends to the end of the match list, so strategies registered
// earlier win ties.
func (s *System) AddStrategy(strategies ...Strategy) {
	s.strategies = append(s.strategies, strategies...)
}

// Strategies returns the registered table in match order.
func (s *System) Strategies() []Strategy {
	return s.strategies
}

// Metrics exposes the recovery counters owned by this system.
func (s *System) Metrics() *Metrics {
	return s.metrics
}

// AttemptRecovery finds the first strategy whose pattern matches the reported
// failure and executes its commands. At most one strategy is attempted per
// call. A nil-match is an expected outcome, not an error.
func (s *System) AttemptRecovery(ctx context.Context, taskID, errorMessage, errorType string) *Result {
	start := time.Now()

	matchText := errorMessage
	if errorType != "" {
		matchText = errorType + " " + errorMessage
	}

	var strategy *Strategy
	for i := range s.strategies {
		if s.strategies[i].Pattern.MatchString(matchText) {
			strategy = &s.strategies[i]
			break
		}
	}
	if strategy == nil {
		return &Result{Action: ActionEscalate}
	}

	key := attemptKey(taskID, strategy.Name)
	s.mu.Lock()
	if s.attempts[key] >= strategy.MaxAttempts {
		s.mu.Unlock()
		result := &Result{
			Strategy:     strategy.Name,
			LimitReached: true,
			Action:       ActionEscalate,
			Err: fmt.Errorf("strategy %q reached its limit of %d attempts for task %s",
				strategy.Name, strategy.MaxAttempts, taskID),
		}
		events.Emit(s.sink, events.TypeRecoveryEscalated, map[string]any{
			"task_id":  taskID,
			"strategy": strategy.Name,
			"reason":   "attempt_limit",
		})
		return result
	}
	s.attempts[key]++
	attempt := s.attempts[key]
	s.mu.Unlock()

	result := &Result{
		Attempted: true,
		Success:   true,
		Strategy:  strategy.Name,
	}
	for _, name := range strategy.Commands {
		args, skip := s.commandArgs(strategy, name, errorMessage)
		if skip {
			// Extraction failed for a command that needs the module name;
			// skip it and keep going with the rest of the strategy.
			events.Emit(s.sink, events.TypeRecoveryCommandSkipped, map[string]any{
				"task_id":  taskID,
				"strategy": strategy.Name,
				"command":  name,
				"reason":   "module_extraction_failed",
			})
			continue
		}
		cmdResult := s.exec.Execute(ctx, name, args)
		result.Commands = append(result.Commands, cmdResult)
		if !cmdResult.Success {
			result.Success = false
		}
	}

	if result.Success && strategy.RetryAfterRecovery {
		result.Action = ActionRetry
	} else {
		result.Action = ActionEscalate
	}

	duration := time.Since(start)
	s.metrics.Record(strategy.Name, result, duration)
	events.Emit(s.sink, events.TypeRecoveryAttempted, map[string]any{
		"task_id":     taskID,
		"strategy":    strategy.Name,
		"attempt":     attempt,
		"success":     result.Success,
		"action":      string(result.Action),
		"duration_ms": duration.Milliseconds(),
	})

	return result
}

// ResetAttempts clears all counters for a task. Call when the task ultimately
// succeeds so a future failure of the same class gets a fresh ceiling.
func (s *System) ResetAttempts(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := taskID + "\x00"
	for key := range s.attempts {
		if strings.HasPrefix(key, prefix) {
			delete(s.attempts, key)
		}
	}
}

// commandArgs binds the extracted module name for commands that take one.
// skip is true when the command needs a module but extraction failed.
func (s *System) commandArgs(strategy *Strategy, name, errorMessage string) (map[string]string, bool) {
	def, ok := s.exec.Lookup(name)
	if !ok || !strings.Contains(def.Template, "{module}") {
		return nil, false
	}
	if strategy.ExtractModule == nil {
		return nil, true
	}
	m := strategy.ExtractModule.FindStringSubmatch(errorMessage)
	if len(m) < 2 || m[1] == "" {
		return nil, true
	}
	return map[string]string{"module": m[1]}, false
}

func attemptKey(taskID, strategy string) string {
	return taskID + "\x00" + strategy
}
