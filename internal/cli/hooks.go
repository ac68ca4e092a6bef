package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jienckebd/devloop/internal/hooks"
)

var hooksEvent string

var hooksCmd = &cobra.Command{
	Use:   "hooks <phase-file>",
	Short: "Run a phase's lifecycle hooks",
	Long: `Hooks loads the hook lists from the phase file's frontmatter and runs the
list selected by --event in declared order. A failing hook stops the list
unless it sets continueOnError.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		var run func(context.Context, string) ([]hooks.Result, error)
		switch hooksEvent {
		case "on-phase-start":
			run = eng.hooks.ExecuteOnPhaseStart
		case "on-phase-complete":
			run = eng.hooks.ExecuteOnPhaseComplete
		case "on-task-complete":
			run = eng.hooks.ExecuteOnTaskComplete
		default:
			return fmt.Errorf("unknown event %q, expected on-phase-start, on-phase-complete or on-task-complete", hooksEvent)
		}

		results, err := run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if results == nil {
			eng.disp.Info("hooks", "phase declares no hooks for this event")
			return nil
		}

		for _, r := range results {
			label := r.Hook.Description
			if label == "" {
				label = string(r.Hook.Type)
			}
			if r.Success {
				eng.disp.Success(fmt.Sprintf("[%d] %s (%s)", r.Index, label, r.Duration.Round(time.Millisecond)))
			} else {
				eng.disp.Error(fmt.Sprintf("[%d] %s: %v", r.Index, label, r.Err))
			}
		}
		if !hooks.AllSucceeded(results) {
			return fmt.Errorf("hook sequence failed")
		}
		return nil
	},
}

func init() {
	hooksCmd.Flags().StringVar(&hooksEvent, "event", "on-phase-start", "which hook list to run")
	rootCmd.AddCommand(hooksCmd)
}
