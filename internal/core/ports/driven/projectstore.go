package driven

import (
	"context"

	"github.com/j-boom/source-manager/internal/core/domain"
)

// ProjectStore persists canonical project records as JSON files.
type ProjectStore interface {
	// Load reads a canonical project record.
	Load(ctx context.Context, path string) (*domain.ProjectRecord, error)

	// LoadRaw reads a project file as an untyped document, preserving
	// legacy shapes the canonical model cannot represent.
	LoadRaw(ctx context.Context, path string) (map[string]any, error)

	// Save writes a canonical project record atomically.
	Save(ctx context.Context, path string, record *domain.ProjectRecord) error

	// Backup copies the file aside before an overwrite and returns the
	// backup path.
	Backup(ctx context.Context, path string) (string, error)
}
