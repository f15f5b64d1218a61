package services

import (
	"context"
	"fmt"

	"github.com/j-boom/source-manager/internal/core/ports/driven"
	"github.com/j-boom/source-manager/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService builds the read-only analytics index from region
// documents and answers summary queries. The region documents remain
// the source of truth; the index is always rebuildable.
type ReportService struct {
	regionStore driven.RegionStore
	reportStore driven.ReportStore
}

// NewReportService creates a new report service.
func NewReportService(regionStore driven.RegionStore, reportStore driven.ReportStore) *ReportService {
	return &ReportService{
		regionStore: regionStore,
		reportStore: reportStore,
	}
}

// Build rebuilds the index from every configured region.
func (s *ReportService) Build(ctx context.Context) error {
	regions, err := s.regionStore.ListRegions(ctx)
	if err != nil {
		return fmt.Errorf("list regions: %w", err)
	}

	for _, region := range regions {
		_, sources, err := s.regionStore.ListSources(ctx, region.Name)
		if err != nil {
			return fmt.Errorf("list sources for %s: %w", region.Name, err)
		}
		if err := s.reportStore.ReplaceRegion(ctx, region.Name, sources); err != nil {
			return fmt.Errorf("index region %s: %w", region.Name, err)
		}
	}
	return nil
}

// Summary returns per-region source counts from the index.
func (s *ReportService) Summary(ctx context.Context) ([]driven.RegionCount, error) {
	return s.reportStore.Summary(ctx)
}
