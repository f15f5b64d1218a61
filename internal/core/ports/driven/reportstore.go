package driven

import (
	"context"

	"github.com/j-boom/source-manager/internal/core/domain"
)

// RegionCount is one row of the reporting summary.
type RegionCount struct {
	Region      string
	SourceCount int
}

// ReportStore is the read-only analytics index over region documents.
// It never writes back to the JSON documents it is built from.
type ReportStore interface {
	// ReplaceRegion replaces the indexed rows for one region.
	ReplaceRegion(ctx context.Context, region string, sources []domain.SourceRecord) error

	// Summary returns per-region source counts.
	Summary(ctx context.Context) ([]RegionCount, error)

	// Close releases the underlying database.
	Close() error
}
