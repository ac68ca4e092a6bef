package recovery

import (
	"regexp"

	"github.com/jienckebd/devloop/internal/command"
)

// Strategy maps an error pattern to a bounded, automatic remediation attempt.
// Strategies are matched in registration order and the first match wins, so
// authors must order specific patterns before generic ones.
type Strategy struct {
	Name string

	// Pattern is tested against "errorType errorMessage". Compile with (?i);
	// matching is expected to be case-insensitive.
	Pattern *regexp.Regexp

	// Commands are registered command names executed in order.
	Commands []string

	// MaxAttempts is the per-task ceiling for this strategy.
	MaxAttempts int

	// RetryAfterRecovery controls the suggested action on success: retry the
	// original operation, or escalate even though the commands succeeded.
	RetryAfterRecovery bool

	// ExtractModule, when set, pulls a captured group out of the error text
	// and binds it as the "module" argument for commands that need one.
	ExtractModule *regexp.Regexp
}

// Action is the suggested next step after a recovery attempt.
type Action string

const (
	// ActionRetry means the remediation succeeded and the original operation
	// should be tried again.
	ActionRetry Action = "retry"
	// ActionEscalate means automatic recovery is done; a human or outer agent
	// must decide next steps.
	ActionEscalate Action = "escalate"
)

// Result describes one AttemptRecovery call.
type Result struct {
	// Attempted reports whether strategy commands were (about to be) run.
	// False both when no strategy matched and when the ceiling was reached;
	// the two are told apart by Strategy and LimitReached.
	Attempted bool

	// Success is true only if every executed command succeeded.
	Success bool

	// Strategy is the name of the matched strategy, empty when nothing
	// matched.
	Strategy string

	// LimitReached marks a ceiling breach: a strategy matched but its attempt
	// budget for this task is exhausted.
	LimitReached bool

	// Commands holds the per-command execution results, in order. Commands
	// skipped by a failed module extraction do not appear.
	Commands []*command.Result

	// Action is the suggested next step.
	Action Action

	// Err explains non-executed outcomes such as a ceiling breach.
	Err error
}
