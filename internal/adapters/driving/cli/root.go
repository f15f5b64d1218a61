// Package cli is the driving adapter: cobra commands over the service
// interfaces in ports/driving. Services are injected through Execute;
// commands never construct their own stores.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/j-boom/source-manager/internal/adapters/driven/watch"
	"github.com/j-boom/source-manager/internal/core/ports/driving"
	"github.com/j-boom/source-manager/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Set by Execute; nil checks in each command keep
// partial wiring (and tests) from panicking.
var (
	sourceService    driving.SourceService
	migrationService driving.MigrationService
	reportService    driving.ReportService
	newWatcher       func() (*watch.Watcher, error)
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "srcmgr",
	Short: "Manage shared source citations and project migrations",
	Long: `srcmgr manages the shared source citation documents for engineering
projects. Projects are routed to a region by directory pattern; each
region owns one JSON document of reusable source records. The migrate
command converts legacy project files to the canonical schema.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose output")
}

// Services bundles everything the CLI needs. The watcher is a factory
// because it holds OS resources that should only be opened on demand.
type Services struct {
	Sources    driving.SourceService
	Migration  driving.MigrationService
	Reports    driving.ReportService
	NewWatcher func() (*watch.Watcher, error)
}

// Execute wires the services into the command tree and runs it.
func Execute(s Services) error {
	sourceService = s.Sources
	migrationService = s.Migration
	reportService = s.Reports
	newWatcher = s.NewWatcher
	return rootCmd.Execute()
}
