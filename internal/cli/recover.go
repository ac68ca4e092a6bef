package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jienckebd/devloop/internal/recovery"
)

var (
	recoverTask  string
	recoverError string
	recoverType  string
)

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Attempt automatic recovery for a reported failure",
	Long: `Recover matches the reported error against the active plugin's strategy
table. The first matching strategy runs its commands through the executor and
the suggested next action (retry or escalate) is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if recoverTask == "" || recoverError == "" {
			return fmt.Errorf("--task and --error are required")
		}

		eng, err := buildEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		result := eng.recovery.AttemptRecovery(cmd.Context(), recoverTask, recoverError, recoverType)

		switch {
		case result.LimitReached:
			eng.disp.Warning(result.Err.Error())
		case !result.Attempted:
			eng.disp.Info("recovery", "no strategy matches this failure")
		default:
			eng.disp.Info("strategy", result.Strategy)
			for _, cr := range result.Commands {
				if cr.Success {
					eng.disp.Success(fmt.Sprintf("%s (%s)", cr.Name, cr.Duration.Round(time.Millisecond)))
				} else {
					eng.disp.Error(fmt.Sprintf("%s: %v", cr.Name, cr.Err))
				}
			}
		}

		if result.Action == recovery.ActionRetry {
			eng.disp.Success("suggested action: retry")
		} else {
			eng.disp.Warning("suggested action: escalate")
		}
		return nil
	},
}

func init() {
	recoverCmd.Flags().StringVar(&recoverTask, "task", "", "task id the failure belongs to")
	recoverCmd.Flags().StringVar(&recoverError, "error", "", "raw error message")
	recoverCmd.Flags().StringVar(&recoverType, "type", "", "classified error type, if known")
	rootCmd.AddCommand(recoverCmd)
}
