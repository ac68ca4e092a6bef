package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jienckebd/devloop/internal/display"
	"github.com/jienckebd/devloop/internal/prdset"
)

var validateWatch bool

var validateCmd = &cobra.Command{
	Use:   "validate <parent-prd.md>",
	Short: "Validate a PRD set's dependency graph and consistency",
	Long: `Validate discovers a parent PRD and its children, then checks for
dependency cycles at the PRD and phase level, frontmatter consistency between
parent and children, and that every referenced file and dependency resolves.

The execution loop may only start on a set that validates cleanly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		disp := display.NewWithOptions(noColor)
		parentPath := args[0]

		ok, err := runValidation(disp, parentPath)
		if err != nil {
			return err
		}
		if !validateWatch {
			if !ok {
				return fmt.Errorf("validation failed")
			}
			return nil
		}
		return watchValidation(cmd, disp, parentPath)
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "re-run validation when PRD files change")
	rootCmd.AddCommand(validateCmd)
}

func runValidation(disp *display.Display, parentPath string) (bool, error) {
	set, err := prdset.Discover(parentPath)
	if err != nil {
		return false, err
	}

	result := prdset.ValidateSet(set)

	disp.Box("VALIDATION",
		fmt.Sprintf("PRDs: %d  acyclic: %v  discoverable: %v  consistent: %v",
			len(set.All()), result.SetLevel.Acyclic, result.SetLevel.Discoverable, result.SetLevel.Consistent))

	if result.Valid() {
		disp.Success("PRD set is valid")
		return true, nil
	}
	for _, msg := range result.Errors {
		disp.Error(msg)
	}
	disp.Warning(fmt.Sprintf("%d validation error(s)", len(result.Errors)))
	return false, nil
}

// watchValidation re-runs validation whenever a file in the PRD directory
// changes, until the command context is cancelled.
func watchValidation(cmd *cobra.Command, disp *display.Display, parentPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(parentPath)); err != nil {
		return fmt.Errorf("cannot watch %s: %w", filepath.Dir(parentPath), err)
	}
	disp.Info("watch", fmt.Sprintf("watching %s for changes", filepath.Dir(parentPath)))

	// Coalesce editor write bursts into one re-run.
	var pending <-chan time.Time
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				pending = time.After(200 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			disp.Warning(fmt.Sprintf("watch error: %v", err))
		case <-pending:
			pending = nil
			if _, err := runValidation(disp, parentPath); err != nil {
				disp.Error(err.Error())
			}
		}
	}
}
