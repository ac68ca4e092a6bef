package command

import "time"

// Purpose categorizes what a registered command is for. Purposes drive the
// metrics breakdown and let auditing group executions by intent.
type Purpose string

const (
	PurposeCacheClear      Purpose = "cache_clear"
	PurposeModuleEnable    Purpose = "module_enable"
	PurposeModuleUninstall Purpose = "module_uninstall"
	PurposeConfigImport    Purpose = "config_import"
	PurposeConfigExport    Purpose = "config_export"
	PurposeDatabaseUpdate  Purpose = "database_update"
	PurposeServiceCheck    Purpose = "service_check"
	PurposeHealthCheck     Purpose = "health_check"
	PurposeTestRun         Purpose = "test_run"
	PurposeLogInspect      Purpose = "log_inspect"
)

// Definition describes a named command template supplied by a framework
// plugin. Templates contain `{placeholder}` tokens resolved from the args map
// at execution time.
type Definition struct {
	Name     string
	Template string
	Purpose  Purpose

	// Timeout overrides the executor default when non-zero.
	Timeout time.Duration

	// Idempotent is informational: recovery strategies prefer commands that
	// are safe to repeat.
	Idempotent bool

	// RequiresConfirmation marks commands a human would normally approve. In
	// autonomous mode execution proceeds anyway, but the emitted event carries
	// a distinct marker so downstream auditing can flag it.
	RequiresConfirmation bool
}
