// Package hooks loads lifecycle hook lists from a phase file's frontmatter and
// executes them in order around phase transitions.
package hooks

// Type identifies how a hook is executed.
type Type string

const (
	// TypeCLICommand dispatches to a registered framework command.
	TypeCLICommand Type = "cli_command"
	// TypeShell runs a literal command line with the hook args as extra
	// environment variables.
	TypeShell Type = "shell"
	// TypeCallback is accepted by the schema but currently a no-op; it is an
	// extension point, not a bug.
	TypeCallback Type = "callback"
)

// Hook is one side-effecting action bound to a phase lifecycle transition.
type Hook struct {
	Type Type `yaml:"type"`

	// CLICommand and Args apply to cli_command hooks.
	CLICommand string            `yaml:"cliCommand,omitempty"`
	Args       map[string]string `yaml:"args,omitempty"`

	// Command applies to shell hooks; Args become environment overrides.
	Command string `yaml:"command,omitempty"`

	Description     string `yaml:"description,omitempty"`
	ContinueOnError bool   `yaml:"continueOnError,omitempty"`
}

// PhaseHooks groups the three ordered hook lists a phase may declare.
type PhaseHooks struct {
	OnPhaseStart    []Hook `yaml:"onPhaseStart,omitempty"`
	OnPhaseComplete []Hook `yaml:"onPhaseComplete,omitempty"`
	OnTaskComplete  []Hook `yaml:"onTaskComplete,omitempty"`
}
