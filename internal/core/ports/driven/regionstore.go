package driven

import (
	"context"

	"github.com/j-boom/source-manager/internal/core/domain"
)

// RegionStore persists one document of shared source records per region.
// Every write is a full read-modify-write of the document under
// per-region mutual exclusion; a write is never observable half-done.
type RegionStore interface {
	// SourceFilePath maps a region name to its document path. Unknown
	// region names fall back to the catch-all document.
	SourceFilePath(region string) string

	// ListSources returns the region's records. A missing or unparsable
	// document yields an empty list and a nil error; the failure is
	// logged, not raised.
	ListSources(ctx context.Context, region string) (string, []domain.SourceRecord, error)

	// AddSource appends a record, generating an id when the record has
	// none, and returns the id actually stored.
	AddSource(ctx context.Context, region string, record domain.SourceRecord) (string, error)

	// UpdateSource applies a patch to the record with the given id.
	// It returns false without mutating anything when the id or the
	// document does not exist.
	UpdateSource(ctx context.Context, region, id string, patch domain.SourcePatch) (bool, error)

	// ListRegions enumerates the static region configuration with
	// opportunistic source counts. Count failures yield zero.
	ListRegions(ctx context.Context) ([]domain.RegionInfo, error)
}
