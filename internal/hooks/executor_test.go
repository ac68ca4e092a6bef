package hooks

import (
	"context"
	"testing"
	"time"

	"github.com/jienckebd/devloop/internal/command"
)

func newTestHookExecutor(t *testing.T) *Executor {
	t.Helper()
	cmds := command.New(command.DefaultConfig(t.TempDir()), nil)
	cmds.Register(
		command.Definition{Name: "cache-rebuild", Template: "echo rebuilt", Purpose: command.PurposeCacheClear},
		command.Definition{Name: "always-fails", Template: "false", Purpose: command.PurposeHealthCheck},
	)
	return NewExecutor(cmds, nil, 10*time.Second)
}

func TestExecuteOnPhaseStart(t *testing.T) {
	e := newTestHookExecutor(t)
	path := writePhaseFile(t, `---
hooks:
  onPhaseStart:
    - type: cli_command
      cliCommand: cache-rebuild
    - type: shell
      command: echo "$GREETING world"
      args:
        GREETING: hello
---

body
`)

	results, err := e.ExecuteOnPhaseStart(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Success || results[0].Output != "rebuilt" {
		t.Errorf("cli_command hook: %+v", results[0])
	}
	if !results[1].Success || results[1].Output != "hello world" {
		t.Errorf("shell hook should see args as environment: %+v", results[1])
	}
	if !AllSucceeded(results) {
		t.Error("expected all hooks to succeed")
	}
}

func TestStopOnFailureWithoutContinueOnError(t *testing.T) {
	e := newTestHookExecutor(t)
	path := writePhaseFile(t, `---
hooks:
  onPhaseComplete:
    - type: cli_command
      cliCommand: always-fails
    - type: shell
      command: echo never-runs
---

body
`)

	results, err := e.ExecuteOnPhaseComplete(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly the failing hook, got %d results", len(results))
	}
	if results[0].Success {
		t.Error("expected first hook to fail")
	}
	if results[0].Err == nil {
		t.Error("expected failure context on the result")
	}
}

func TestContinueOnErrorRunsRemainingHooks(t *testing.T) {
	e := newTestHookExecutor(t)
	path := writePhaseFile(t, `---
hooks:
  onPhaseComplete:
    - type: cli_command
      cliCommand: always-fails
      continueOnError: true
    - type: shell
      command: echo second
---

body
`)

	results, err := e.ExecuteOnPhaseComplete(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected both hooks to appear, got %d", len(results))
	}
	if results[0].Success {
		t.Error("first hook should fail")
	}
	if !results[1].Success || results[1].Output != "second" {
		t.Errorf("second hook should still run: %+v", results[1])
	}
	if AllSucceeded(results) {
		t.Error("sequence should report overall failure")
	}
}

func TestCallbackHookIsANoOp(t *testing.T) {
	e := newTestHookExecutor(t)
	path := writePhaseFile(t, `---
hooks:
  onTaskComplete:
    - type: callback
      description: notify learning store
---

body
`)

	results, err := e.ExecuteOnTaskComplete(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Errorf("callback hooks are accepted and succeed as no-ops: %+v", results)
	}
}

func TestNoHooksDeclared(t *testing.T) {
	e := newTestHookExecutor(t)
	path := writePhaseFile(t, "# no header\n")

	results, err := e.ExecuteOnPhaseStart(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results for a phase without hooks, got %+v", results)
	}
}

func TestHooksReloadedOnEveryCall(t *testing.T) {
	e := newTestHookExecutor(t)
	path := writePhaseFile(t, `---
hooks:
  onPhaseStart:
    - type: shell
      command: echo first-version
---

body
`)

	results, err := e.ExecuteOnPhaseStart(context.Background(), path)
	if err != nil || len(results) != 1 || results[0].Output != "first-version" {
		t.Fatalf("first run: %v %+v", err, results)
	}

	// External edits take effect immediately because nothing is cached.
	rewritePhaseFile(t, path, `---
hooks:
  onPhaseStart:
    - type: shell
      command: echo second-version
---

body
`)
	results, err = e.ExecuteOnPhaseStart(context.Background(), path)
	if err != nil || len(results) != 1 || results[0].Output != "second-version" {
		t.Fatalf("second run: %v %+v", err, results)
	}
}

func TestUnknownHookTypeFails(t *testing.T) {
	e := newTestHookExecutor(t)
	path := writePhaseFile(t, `---
hooks:
  onPhaseStart:
    - type: websocket
---

body
`)

	results, err := e.ExecuteOnPhaseStart(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Success {
		t.Errorf("unknown hook types must fail the hook: %+v", results)
	}
}
