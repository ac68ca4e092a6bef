// Package command owns the registry of framework CLI commands and runs them as
// subprocesses on behalf of lifecycle hooks and recovery strategies. Templates
// are registered once at startup and looked up by name on every invocation.
package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jienckebd/devloop/internal/events"
	"github.com/jienckebd/devloop/internal/utils"
)

// Config holds executor configuration
type Config struct {
	DefaultTimeout time.Duration
	MaxOutputBytes int
	Shell          string
	WorkDir        string
}

// DefaultConfig returns default executor configuration
func DefaultConfig(workDir string) *Config {
	return &Config{
		DefaultTimeout: 60 * time.Second,
		MaxOutputBytes: 1 << 20,
		Shell:          "sh",
		WorkDir:        workDir,
	}
}

// Executor runs registered command templates as subprocesses with placeholder
// substitution, timeouts and metrics.
type Executor struct {
	config   *Config
	commands map[string]Definition
	metrics  *Metrics
	sink     events.Sink
}

// Result holds the outcome of a single command invocation. Expected failures
// (unknown name, missing arguments, non-zero exit, timeout) are carried in the
// result, not returned as errors.
type Result struct {
	Name      string
	Command   string
	Success   bool
	Stdout    string
	Stderr    string
	ExitCode  int
	Duration  time.Duration
	Truncated bool
	ErrorType ErrorType
	Err       error
}

// New creates a new executor. The sink may be nil.
func New(config *Config, sink events.Sink) *Executor {
	if config == nil {
		config = DefaultConfig("")
	}
	return &Executor{
		config:   config,
		commands: make(map[string]Definition),
		metrics:  NewMetrics(),
		sink:     sink,
	}
}

// Register adds definitions to the registry, overwriting by name. Safe to call
// repeatedly with the same list.
func (e *Executor) Register(defs ...Definition) {
	for _, def := range defs {
		e.commands[def.Name] = def
	}
}

// Lookup returns the definition registered under name.
func (e *Executor) Lookup(name string) (Definition, bool) {
	def, ok := e.commands[name]
	return def, ok
}

// Names returns all registered command names, sorted.
func (e *Executor) Names() []string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metrics exposes the process-wide counters owned by this executor.
func (e *Executor) Metrics() *Metrics {
	return e.metrics
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Execute looks up a registered command, substitutes args into its template
// and runs it. Every `{key}` token must be satisfied by args; unresolved
// tokens fail before any subprocess is spawned.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]string) *Result {
	def, ok := e.commands[name]
	if !ok {
		return &Result{
			Name:      name,
			Success:   false,
			ExitCode:  -1,
			ErrorType: ErrorNotFound,
			Err:       fmt.Errorf("unknown command %q (available: %s)", name, strings.Join(e.Names(), ", ")),
		}
	}

	substituted := def.Template
	for key, value := range args {
		substituted = strings.ReplaceAll(substituted, "{"+key+"}", value)
	}
	if missing := unresolvedPlaceholders(substituted); len(missing) > 0 {
		return &Result{
			Name:      name,
			Command:   substituted,
			Success:   false,
			ExitCode:  -1,
			ErrorType: ErrorUnknown,
			Err:       fmt.Errorf("command %q missing required arguments: %s", name, strings.Join(missing, ", ")),
		}
	}

	timeout := def.Timeout
	if timeout <= 0 {
		timeout = e.config.DefaultTimeout
	}

	result := e.run(ctx, substituted, timeout)
	result.Name = name
	e.metrics.Record(name, def.Purpose, result.Success, result.Duration, result.ErrorType)

	eventType := events.TypeCommandExecuted
	if !result.Success {
		eventType = events.TypeCommandFailed
	}
	fields := map[string]any{
		"name":        name,
		"purpose":     string(def.Purpose),
		"command":     substituted,
		"duration_ms": result.Duration.Milliseconds(),
		"success":     result.Success,
		"exit_code":   result.ExitCode,
	}
	if !result.Success {
		fields["error_type"] = string(result.ErrorType)
	}
	if def.RequiresConfirmation {
		// Autonomous mode has no human to ask; mark the bypass for auditing.
		fields["confirmation_bypassed"] = true
	}
	events.Emit(e.sink, eventType, fields)

	return result
}

// ExecuteRaw runs an ad-hoc shell command outside the registry, with the same
// subprocess and timeout semantics but no metrics attribution.
func (e *Executor) ExecuteRaw(ctx context.Context, commandLine string, timeout time.Duration) *Result {
	if timeout <= 0 {
		timeout = e.config.DefaultTimeout
	}
	result := e.run(ctx, commandLine, timeout)

	eventType := events.TypeCommandExecuted
	if !result.Success {
		eventType = events.TypeCommandFailed
	}
	fields := map[string]any{
		"raw":         true,
		"command":     commandLine,
		"duration_ms": result.Duration.Milliseconds(),
		"success":     result.Success,
		"exit_code":   result.ExitCode,
	}
	if !result.Success {
		fields["error_type"] = string(result.ErrorType)
	}
	events.Emit(e.sink, eventType, fields)

	return result
}

func (e *Executor) run(ctx context.Context, commandLine string, timeout time.Duration) *Result {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, utils.ResolveBinaryPath(e.config.Shell), "-c", commandLine)
	cmd.Dir = e.config.WorkDir

	stdout := newCappedBuffer(e.config.MaxOutputBytes)
	stderr := newCappedBuffer(e.config.MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := &Result{
		Command:   commandLine,
		Stdout:    strings.TrimSpace(stdout.String()),
		Stderr:    strings.TrimSpace(stderr.String()),
		ExitCode:  -1,
		Duration:  duration,
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.ErrorType = ErrorTimeout
		result.Err = fmt.Errorf("command timed out after %s", timeout)
		return result
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) && result.ExitCode < 0 {
			// The process never started (bad shell, fork failure).
			result.Err = fmt.Errorf("command failed to start: %w", err)
		} else {
			result.Err = fmt.Errorf("command exited with code %d: %s", result.ExitCode, firstNonEmpty(result.Stderr, result.Stdout, err.Error()))
		}
		result.ErrorType = Classify(result.Stderr + "\n" + result.Stdout + "\n" + err.Error())
		return result
	}

	result.Success = true
	return result
}

func unresolvedPlaceholders(commandLine string) []string {
	matches := placeholderRe.FindAllStringSubmatch(commandLine, -1)
	seen := make(map[string]bool)
	var missing []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			missing = append(missing, m[1])
		}
	}
	sort.Strings(missing)
	return missing
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
