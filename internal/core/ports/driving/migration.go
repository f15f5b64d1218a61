package driving

import "context"

// MigrationSummary is the tally of one batch migration run.
type MigrationSummary struct {
	// Attempted is the number of files the batch looked at.
	Attempted int

	// Migrated is the number of files successfully converted.
	Migrated int

	// Skipped is the number of files already in the canonical schema.
	Skipped int

	// Failures maps failing filenames to their error messages.
	Failures map[string]string
}

// Failed returns the number of files that could not be migrated.
func (s *MigrationSummary) Failed() int {
	return len(s.Failures)
}

// MigrationService converts legacy project files to the canonical schema.
type MigrationService interface {
	// MigrateFile migrates a single project file in place, backing up
	// the original first.
	MigrateFile(ctx context.Context, path string) error

	// MigrateDirectory migrates every .json file in a directory.
	// Individual failures never abort the batch; the summary reports
	// them all.
	MigrateDirectory(ctx context.Context, dir string) (*MigrationSummary, error)
}
