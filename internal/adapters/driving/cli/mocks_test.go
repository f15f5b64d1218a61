package cli

import (
	"context"
	"errors"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/core/ports/driven"
	"github.com/j-boom/source-manager/internal/core/ports/driving"
)

// mockSourceService is a canned SourceService for command tests.
type mockSourceService struct {
	resolved string
	regions  []domain.RegionInfo
	sources  []domain.SourceRecord
	addedID  string
	updateOK bool
	err      error

	lastRegion string
	lastPatch  domain.SourcePatch
}

var _ driving.SourceService = (*mockSourceService)(nil)

func (m *mockSourceService) ResolveRegion(string) string {
	return m.resolved
}

func (m *mockSourceService) ListSources(_ context.Context, region string) (string, []domain.SourceRecord, error) {
	m.lastRegion = region
	return region, m.sources, m.err
}

func (m *mockSourceService) AddSource(_ context.Context, region string, _ domain.SourceRecord) (string, error) {
	m.lastRegion = region
	return m.addedID, m.err
}

func (m *mockSourceService) UpdateSource(_ context.Context, region, _ string, patch domain.SourcePatch) (bool, error) {
	m.lastRegion = region
	m.lastPatch = patch
	return m.updateOK, m.err
}

func (m *mockSourceService) ListRegions(context.Context) ([]domain.RegionInfo, error) {
	return m.regions, m.err
}

// mockMigrationService is a canned MigrationService for command tests.
type mockMigrationService struct {
	summary *driving.MigrationSummary
	err     error
}

var _ driving.MigrationService = (*mockMigrationService)(nil)

func (m *mockMigrationService) MigrateFile(context.Context, string) error {
	return m.err
}

func (m *mockMigrationService) MigrateDirectory(context.Context, string) (*driving.MigrationSummary, error) {
	return m.summary, m.err
}

// mockReportService is a canned ReportService for command tests.
type mockReportService struct {
	counts []driven.RegionCount
	err    error
}

var _ driving.ReportService = (*mockReportService)(nil)

func (m *mockReportService) Build(context.Context) error {
	return m.err
}

func (m *mockReportService) Summary(context.Context) ([]driven.RegionCount, error) {
	return m.counts, m.err
}

var errMock = errors.New("mock failure")
