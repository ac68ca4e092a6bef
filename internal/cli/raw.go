package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var rawTimeout time.Duration

var rawCmd = &cobra.Command{
	Use:   "raw -- <command> [args...]",
	Short: "Run an ad-hoc shell command outside the registry",
	Long: `Raw bypasses the command registry for one-off shell invocations, with the
same subprocess and timeout semantics as registered commands but no metrics
attribution.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		commandLine := strings.Join(args, " ")
		result := eng.commands.ExecuteRaw(cmd.Context(), commandLine, rawTimeout)
		if result.Stdout != "" {
			fmt.Println(result.Stdout)
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
	rawCmd.Flags().DurationVar(&rawTimeout, "timeout", 0, "override the default timeout (e.g. 30s)")
	rootCmd.AddCommand(rawCmd)
}
