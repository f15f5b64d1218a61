package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <path>",
	Short: "Migrate legacy project files to the canonical schema",
	Long: `Migrates legacy project JSON files in place. Given a directory, every
.json file in it is migrated independently; one bad file never stops
the rest. Originals are backed up next to the migrated files.`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if migrationService == nil {
		return errors.New("migration service not configured")
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if err := migrationService.MigrateFile(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		cmd.Printf("Migrated %s\n", args[0])
		return nil
	}

	summary, err := migrationService.MigrateDirectory(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	cmd.Printf("Attempted %d file(s): %d migrated, %d skipped, %d failed\n",
		summary.Attempted, summary.Migrated, summary.Skipped, summary.Failed())

	if summary.Failed() > 0 {
		names := make([]string, 0, len(summary.Failures))
		for name := range summary.Failures {
			names = append(names, name)
		}
		sort.Strings(names)
		cmd.Println("Failures:")
		for _, name := range names {
			cmd.Printf("  %s: %s\n", name, summary.Failures[name])
		}
	}
	return nil
}
