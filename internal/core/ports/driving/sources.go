package driving

import (
	"context"

	"github.com/j-boom/source-manager/internal/core/domain"
)

// SourceService manages shared source records and region routing.
type SourceService interface {
	// ResolveRegion returns the region owning the given project path.
	// Routing is total: every path resolves to some region.
	ResolveRegion(projectPath string) string

	// ListSources returns the records of a region.
	ListSources(ctx context.Context, region string) (string, []domain.SourceRecord, error)

	// AddSource stores a record in a region and returns its id.
	AddSource(ctx context.Context, region string, record domain.SourceRecord) (string, error)

	// UpdateSource patches a record in place. False means the region
	// document or the record id was not found; nothing was changed.
	UpdateSource(ctx context.Context, region, id string, patch domain.SourcePatch) (bool, error)

	// ListRegions enumerates configured regions with source counts.
	ListRegions(ctx context.Context) ([]domain.RegionInfo, error)
}
