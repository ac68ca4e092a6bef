package plugin

import (
	"regexp"
	"time"

	"github.com/jienckebd/devloop/internal/command"
	"github.com/jienckebd/devloop/internal/recovery"
)

func init() {
	Register(&drupal{})
}

// drupal drives a Drupal site through drush.
type drupal struct{}

func (d *drupal) Name() string { return "drupal" }

func (d *drupal) Commands() []command.Definition {
	return []command.Definition{
		{
			Name:       "cache-rebuild",
			Template:   "drush cache:rebuild",
			Purpose:    command.PurposeCacheClear,
			Timeout:    2 * time.Minute,
			Idempotent: true,
		},
		{
			Name:     "module-enable",
			Template: "drush pm:enable {module} -y",
			Purpose:  command.PurposeModuleEnable,
			Timeout:  3 * time.Minute,
		},
		{
			Name:                 "module-uninstall",
			Template:             "drush pm:uninstall {module} -y",
			Purpose:              command.PurposeModuleUninstall,
			Timeout:              3 * time.Minute,
			RequiresConfirmation: true,
		},
		{
			Name:     "config-import",
			Template: "drush config:import -y",
			Purpose:  command.PurposeConfigImport,
			Timeout:  5 * time.Minute,
		},
		{
			Name:     "config-import-partial",
			Template: "drush config:import --partial -y",
			Purpose:  command.PurposeConfigImport,
			Timeout:  5 * time.Minute,
		},
		{
			Name:       "config-export",
			Template:   "drush config:export -y",
			Purpose:    command.PurposeConfigExport,
			Timeout:    2 * time.Minute,
			Idempotent: true,
		},
		{
			Name:     "database-update",
			Template: "drush updatedb -y",
			Purpose:  command.PurposeDatabaseUpdate,
			Timeout:  10 * time.Minute,
		},
		{
			Name:       "service-check",
			Template:   `drush php:eval "\Drupal::service('{service}');"`,
			Purpose:    command.PurposeServiceCheck,
			Idempotent: true,
		},
		{
			Name:       "status-check",
			Template:   "drush core:status --fields=bootstrap",
			Purpose:    command.PurposeHealthCheck,
			Idempotent: true,
		},
		{
			Name:       "core-requirements",
			Template:   "drush core:requirements --severity=2",
			Purpose:    command.PurposeHealthCheck,
			Idempotent: true,
		},
		{
			Name:     "test-run",
			Template: "./vendor/bin/phpunit {path}",
			Purpose:  command.PurposeTestRun,
			Timeout:  15 * time.Minute,
		},
		{
			Name:       "watchdog-show",
			Template:   "drush watchdog:show --count={count}",
			Purpose:    command.PurposeLogInspect,
			Idempotent: true,
		},
	}
}

func (d *drupal) Strategies() []recovery.Strategy {
	return []recovery.Strategy{
		{
			Name:               "rebuild-cache-for-missing-service",
			Pattern:            regexp.MustCompile(`(?i)service\s+.*not.*found|you have requested a non-existent service`),
			Commands:           []string{"cache-rebuild"},
			MaxAttempts:        2,
			RetryAfterRecovery: true,
		},
		{
			Name:               "enable-missing-module",
			Pattern:            regexp.MustCompile(`(?i)module\s+.*(not installed|not found|is missing)`),
			Commands:           []string{"module-enable", "cache-rebuild"},
			MaxAttempts:        2,
			RetryAfterRecovery: true,
			ExtractModule:      regexp.MustCompile(`(?i)module\s+["']?([a-z0-9_]+)["']?`),
		},
		{
			Name:               "partial-config-import",
			Pattern:            regexp.MustCompile(`(?i)config.*import.*(fail|error)|configuration.*cannot be imported`),
			Commands:           []string{"config-import-partial"},
			MaxAttempts:        1,
			RetryAfterRecovery: true,
		},
		{
			Name:               "run-pending-database-updates",
			Pattern:            regexp.MustCompile(`(?i)pending\s+(database\s+)?updates|updatedb`),
			Commands:           []string{"database-update", "cache-rebuild"},
			MaxAttempts:        1,
			RetryAfterRecovery: true,
		},
		{
			// Rebuilding frees stale caches but a memory ceiling needs human
			// attention regardless, so never suggest a retry.
			Name:               "memory-exhausted",
			Pattern:            regexp.MustCompile(`(?i)allowed memory size|out of memory|memory exhausted`),
			Commands:           []string{"cache-rebuild"},
			MaxAttempts:        1,
			RetryAfterRecovery: false,
		},
	}
}
