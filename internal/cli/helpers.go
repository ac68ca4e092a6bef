package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jienckebd/devloop/internal/command"
	"github.com/jienckebd/devloop/internal/config"
	"github.com/jienckebd/devloop/internal/display"
	"github.com/jienckebd/devloop/internal/events"
	"github.com/jienckebd/devloop/internal/hooks"
	"github.com/jienckebd/devloop/internal/plugin"
	"github.com/jienckebd/devloop/internal/recovery"
)

// engine wires the executor, hook runner and recovery system for one CLI
// invocation.
type engine struct {
	cfg      *config.Config
	sink     *events.LogSink
	commands *command.Executor
	hooks    *hooks.Executor
	recovery *recovery.System
	disp     *display.Display
}

func buildEngine() (*engine, error) {
	ws := workspaceDir
	if ws == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		ws = cwd
	}

	cfg, err := config.Load(ws)
	if err != nil {
		return nil, err
	}

	sink, err := events.NewLogSink(cfg.Events.LogPath)
	if err != nil {
		return nil, err
	}

	cmds := command.New(&command.Config{
		DefaultTimeout: time.Duration(cfg.Executor.DefaultTimeoutSecs) * time.Second,
		MaxOutputBytes: cfg.Executor.MaxOutputKB * 1024,
		Shell:          cfg.Executor.Shell,
		WorkDir:        ws,
	}, sink)

	p, err := plugin.Lookup(cfg.Plugin.Framework)
	if err != nil {
		sink.Close()
		return nil, err
	}
	cmds.Register(p.Commands()...)

	rec := recovery.NewSystem(cmds, sink)
	rec.AddStrategy(p.Strategies()...)

	hk := hooks.NewExecutor(cmds, sink, time.Duration(cfg.Hooks.ShellTimeoutSecs)*time.Second)
	hk.Debug = cfg.Hooks.Debug

	return &engine{
		cfg:      cfg,
		sink:     sink,
		commands: cmds,
		hooks:    hk,
		recovery: rec,
		disp:     display.NewWithOptions(noColor),
	}, nil
}

func (e *engine) Close() {
	e.sink.Close()
}

// parseArgPairs converts repeated key=value flags into an args map.
func parseArgPairs(pairs []string) (map[string]string, error) {
	args := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}
