package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands registered by the active framework plugin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		eng.disp.Box("COMMANDS", fmt.Sprintf("framework: %s", eng.cfg.Plugin.Framework))
		for _, name := range eng.commands.Names() {
			def, _ := eng.commands.Lookup(name)
			flags := ""
			if def.Idempotent {
				flags += " [idempotent]"
			}
			if def.RequiresConfirmation {
				flags += " [requires confirmation]"
			}
			fmt.Printf("  %-24s %-16s %s%s\n", def.Name, def.Purpose, def.Template, flags)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
