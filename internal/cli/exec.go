package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	execArgs        []string
	execShowMetrics bool
)

var execCmd = &cobra.Command{
	Use:   "exec <command-name>",
	Short: "Run one registered framework command",
	Long: `Exec substitutes --arg values into the named command's template and runs
it as a subprocess with the configured timeout. Every {placeholder} in the
template must be satisfied or the call fails before anything is spawned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		cmdArgs, err := parseArgPairs(execArgs)
		if err != nil {
			return err
		}

		result := eng.commands.Execute(cmd.Context(), args[0], cmdArgs)
		eng.disp.Info("command", result.Command)
		if result.Stdout != "" {
			fmt.Println(result.Stdout)
		}
		if execShowMetrics {
			printCommandMetrics(eng)
		}
		if !result.Success {
			if result.Err != nil {
				return fmt.Errorf("%s (%s)", result.Err, result.ErrorType)
			}
			return fmt.Errorf("command failed (%s)", result.ErrorType)
		}
		eng.disp.Success(fmt.Sprintf("completed in %s", result.Duration.Round(time.Millisecond)))
		return nil
	},
}

func init() {
	execCmd.Flags().StringArrayVar(&execArgs, "arg", nil, "template argument as key=value (repeatable)")
	execCmd.Flags().BoolVar(&execShowMetrics, "metrics", false, "print execution metrics afterwards")
	rootCmd.AddCommand(execCmd)
}

func printCommandMetrics(eng *engine) {
	snap := eng.commands.Metrics().Snapshot()
	eng.disp.Box("METRICS", fmt.Sprintf("total invocations: %d", snap.TotalInvocations))
	for name, b := range snap.ByName {
		fmt.Printf("  %-24s runs=%d success=%.0f%% avg=%s\n",
			name, b.Invocations, b.SuccessRate*100, b.AverageDuration.Round(time.Millisecond))
	}
	for kind, n := range snap.FailuresByType {
		fmt.Printf("  failures[%s]=%d\n", kind, n)
	}
}
