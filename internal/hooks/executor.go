package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jienckebd/devloop/internal/command"
	"github.com/jienckebd/devloop/internal/events"
)

// Result records one hook execution.
type Result struct {
	Hook     Hook
	Index    int
	Success  bool
	Output   string
	Duration time.Duration
	Err      error
}

// Executor runs hook lists in declared order. cli_command hooks delegate to
// the command executor; shell hooks run through a raw subprocess.
type Executor struct {
	commands     *command.Executor
	sink         events.Sink
	shell        string
	shellTimeout time.Duration

	// Debug streams shell-hook output to the terminal instead of capturing it.
	Debug bool
}

// NewExecutor creates a hook executor. The sink may be nil.
func NewExecutor(commands *command.Executor, sink events.Sink, shellTimeout time.Duration) *Executor {
	if shellTimeout <= 0 {
		shellTimeout = 60 * time.Second
	}
	return &Executor{
		commands:     commands,
		sink:         sink,
		shell:        "sh",
		shellTimeout: shellTimeout,
	}
}

// ExecuteOnPhaseStart reloads hooks from the phase file and runs the
// onPhaseStart list.
func (e *Executor) ExecuteOnPhaseStart(ctx context.Context, phasePath string) ([]Result, error) {
	return e.executeEvent(ctx, phasePath, "onPhaseStart")
}

// ExecuteOnPhaseComplete reloads hooks from the phase file and runs the
// onPhaseComplete list.
func (e *Executor) ExecuteOnPhaseComplete(ctx context.Context, phasePath string) ([]Result, error) {
	return e.executeEvent(ctx, phasePath, "onPhaseComplete")
}

// ExecuteOnTaskComplete reloads hooks from the phase file and runs the
// onTaskComplete list.
func (e *Executor) ExecuteOnTaskComplete(ctx context.Context, phasePath string) ([]Result, error) {
	return e.executeEvent(ctx, phasePath, "onTaskComplete")
}

// AllSucceeded reports whether every hook in results succeeded.
func AllSucceeded(results []Result) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}

func (e *Executor) executeEvent(ctx context.Context, phasePath, event string) ([]Result, error) {
	phaseHooks, err := LoadPhaseHooks(phasePath)
	if err != nil {
		return nil, err
	}
	if phaseHooks == nil {
		return nil, nil
	}

	var list []Hook
	switch event {
	case "onPhaseStart":
		list = phaseHooks.OnPhaseStart
	case "onPhaseComplete":
		list = phaseHooks.OnPhaseComplete
	case "onTaskComplete":
		list = phaseHooks.OnTaskComplete
	}

	var results []Result
	for i, hook := range list {
		events.Emit(e.sink, events.TypeHookStarted, map[string]any{
			"event":       event,
			"index":       i,
			"type":        string(hook.Type),
			"description": hook.Description,
		})

		result := e.executeHook(ctx, hook)
		result.Index = i
		results = append(results, result)

		eventType := events.TypeHookCompleted
		if !result.Success {
			eventType = events.TypeHookFailed
		}
		fields := map[string]any{
			"event":       event,
			"index":       i,
			"type":        string(hook.Type),
			"description": hook.Description,
			"duration_ms": result.Duration.Milliseconds(),
		}
		if result.Err != nil {
			fields["error"] = result.Err.Error()
		}
		events.Emit(e.sink, eventType, fields)

		if !result.Success && !hook.ContinueOnError {
			// Stop immediately; the partial list includes the failing hook.
			return results, nil
		}
	}
	return results, nil
}

func (e *Executor) executeHook(ctx context.Context, hook Hook) Result {
	start := time.Now()
	result := Result{Hook: hook}

	switch hook.Type {
	case TypeCLICommand:
		cmdResult := e.commands.Execute(ctx, hook.CLICommand, hook.Args)
		result.Success = cmdResult.Success
		result.Output = cmdResult.Stdout
		if !cmdResult.Success {
			if cmdResult.Err != nil {
				result.Err = cmdResult.Err
			} else {
				result.Err = fmt.Errorf("command %q failed", hook.CLICommand)
			}
		}

	case TypeShell:
		result.Output, result.Err = e.runShell(ctx, hook)
		result.Success = result.Err == nil

	case TypeCallback:
		// Extension point: accepted by the schema, not yet dispatched.
		events.Emit(e.sink, events.TypeHookSkipped, map[string]any{
			"type":        string(hook.Type),
			"description": hook.Description,
			"reason":      "callback hooks are not implemented",
		})
		result.Success = true

	default:
		result.Err = fmt.Errorf("unknown hook type %q", hook.Type)
	}

	result.Duration = time.Since(start)
	return result
}

// runShell executes the literal command string with the process environment
// extended by the hook args.
func (e *Executor) runShell(ctx context.Context, hook Hook) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, e.shellTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.shell, "-c", hook.Command)
	env := os.Environ()
	for key, value := range hook.Args {
		env = append(env, key+"="+value)
	}
	cmd.Env = env

	if e.Debug {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		err := cmd.Run()
		if runCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("shell hook timed out after %s", e.shellTimeout)
		}
		return "", err
	}

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if runCtx.Err() == context.DeadlineExceeded {
		return output, fmt.Errorf("shell hook timed out after %s", e.shellTimeout)
	}
	if err != nil {
		return output, fmt.Errorf("shell hook failed: %w", err)
	}
	return output, nil
}
