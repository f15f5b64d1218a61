package services

import (
	"context"
	"fmt"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/core/ports/driven"
	"github.com/j-boom/source-manager/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages shared source records, routing project paths to
// the region store that owns them.
type SourceService struct {
	regionStore driven.RegionStore
	router      *Router
}

// NewSourceService creates a new source service.
func NewSourceService(regionStore driven.RegionStore, router *Router) *SourceService {
	return &SourceService{
		regionStore: regionStore,
		router:      router,
	}
}

// ResolveRegion returns the region owning the given project path.
func (s *SourceService) ResolveRegion(projectPath string) string {
	return s.router.ResolveRegion(projectPath)
}

// ListSources returns the records of a region.
func (s *SourceService) ListSources(ctx context.Context, region string) (string, []domain.SourceRecord, error) {
	if region == "" {
		return "", nil, domain.ErrInvalidInput
	}
	return s.regionStore.ListSources(ctx, region)
}

// AddSource stores a record in a region and returns its id.
func (s *SourceService) AddSource(ctx context.Context, region string, record domain.SourceRecord) (string, error) {
	if region == "" {
		return "", domain.ErrInvalidInput
	}
	if record.Title == "" && record.ID == "" && len(record.Extra) == 0 {
		return "", fmt.Errorf("empty source record: %w", domain.ErrInvalidInput)
	}
	if record.Scope == "" {
		record.Scope = domain.ScopeRegional
	}
	return s.regionStore.AddSource(ctx, region, record)
}

// UpdateSource patches a record in place.
func (s *SourceService) UpdateSource(ctx context.Context, region, id string, patch domain.SourcePatch) (bool, error) {
	if region == "" || id == "" {
		return false, domain.ErrInvalidInput
	}
	if patch.IsZero() {
		return false, fmt.Errorf("empty patch: %w", domain.ErrInvalidInput)
	}
	return s.regionStore.UpdateSource(ctx, region, id, patch)
}

// ListRegions enumerates configured regions with source counts.
func (s *SourceService) ListRegions(ctx context.Context) ([]domain.RegionInfo, error) {
	return s.regionStore.ListRegions(ctx)
}
