package driving

import (
	"context"

	"github.com/j-boom/source-manager/internal/core/ports/driven"
)

// ReportService maintains the read-only analytics index over region
// documents and answers summary queries from it.
type ReportService interface {
	// Build rebuilds the index from every region document.
	Build(ctx context.Context) error

	// Summary returns per-region source counts from the index.
	Summary(ctx context.Context) ([]driven.RegionCount, error)
}
