// Command srcmgr manages shared source citation documents and migrates
// legacy project files to the canonical schema.
package main

import (
	"fmt"
	"os"

	configfile "github.com/j-boom/source-manager/internal/adapters/driven/config/file"
	storagefile "github.com/j-boom/source-manager/internal/adapters/driven/storage/file"
	"github.com/j-boom/source-manager/internal/adapters/driven/storage/sqlite"
	"github.com/j-boom/source-manager/internal/adapters/driven/watch"
	"github.com/j-boom/source-manager/internal/adapters/driving/cli"
	"github.com/j-boom/source-manager/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "srcmgr: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := os.Getenv("SRCMGR_CONFIG_DIR")

	cfg, err := configfile.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	regions, err := configfile.LoadRegions(configDir)
	if err != nil {
		return fmt.Errorf("loading regions: %w", err)
	}

	regionStore, err := storagefile.NewRegionStore(cfg.MasterSourcesRoot, regions)
	if err != nil {
		return fmt.Errorf("opening region store: %w", err)
	}
	projectStore := storagefile.NewProjectStore()

	router, err := services.NewRouter(regions)
	if err != nil {
		return fmt.Errorf("building router: %w", err)
	}

	reportStore, err := sqlite.NewReportStore(cfg.ReportDir)
	if err != nil {
		return fmt.Errorf("opening report store: %w", err)
	}
	defer reportStore.Close()

	return cli.Execute(cli.Services{
		Sources:   services.NewSourceService(regionStore, router),
		Migration: services.NewMigrationService(projectStore),
		Reports:   services.NewReportService(regionStore, reportStore),
		NewWatcher: func() (*watch.Watcher, error) {
			return watch.NewWatcher(regionStore.Root(), regions)
		},
	})
}
