package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/core/ports/driven"
	"github.com/j-boom/source-manager/internal/core/ports/driving"
	"github.com/j-boom/source-manager/internal/logger"
)

// Ensure MigrationService implements the interface.
var _ driving.MigrationService = (*MigrationService)(nil)

// MigrationService drives batch migration of legacy project files.
// Files are migrated independently; one failure never aborts the batch.
type MigrationService struct {
	projectStore driven.ProjectStore
}

// NewMigrationService creates a new migration service.
func NewMigrationService(projectStore driven.ProjectStore) *MigrationService {
	return &MigrationService{projectStore: projectStore}
}

// MigrateFile migrates one project file in place. The original is
// backed up before the canonical record overwrites it.
func (m *MigrationService) MigrateFile(ctx context.Context, path string) error {
	legacy, err := m.projectStore.LoadRaw(ctx, path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	record, err := Migrate(legacy, filepath.Base(path))
	if err != nil {
		return err
	}

	backup, err := m.projectStore.Backup(ctx, path)
	if err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	logger.Debug("backed up %s to %s", path, backup)

	if err := m.projectStore.Save(ctx, path, record); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// MigrateDirectory migrates every .json file directly under dir. The
// returned summary tallies successes, already-canonical skips and
// failures with their filenames; it is complete even when every file
// fails.
func (m *MigrationService) MigrateDirectory(ctx context.Context, dir string) (*driving.MigrationSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	summary := &driving.MigrationSummary{Failures: make(map[string]string)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Attempted++
		path := filepath.Join(dir, entry.Name())

		switch err := m.MigrateFile(ctx, path); {
		case err == nil:
			summary.Migrated++
			logger.Info("migrated %s", entry.Name())
		case errors.Is(err, domain.ErrAlreadyCanonical):
			summary.Skipped++
			logger.Info("skipped %s: already canonical", entry.Name())
		default:
			summary.Failures[entry.Name()] = err.Error()
			logger.Warn("migrate %s: %v", entry.Name(), err)
		}
	}
	return summary, nil
}
