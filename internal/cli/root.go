package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version      = "0.1.0"
	workspaceDir string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "devloop",
	Short: "Agentic execution and recovery engine for PRD-driven development",
	Long: `Devloop validates PRD dependency graphs, runs framework CLI commands on
behalf of lifecycle hooks and recovery strategies, and attempts bounded
automatic recovery from known failure classes before escalating.

Get started:
  devloop validate <parent-prd.md>   Validate a PRD set before execution
  devloop commands                   List registered framework commands
  devloop exec <name>                Run one registered command
  devloop hooks <phase-file>         Run a phase's lifecycle hooks
  devloop recover                    Attempt recovery for a reported failure`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workspaceDir, "workspace", "", "workspace directory (default is the current directory)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.SetVersionTemplate(fmt.Sprintf("devloop version %s\n", version))
	rootCmd.SilenceUsage = true
}
