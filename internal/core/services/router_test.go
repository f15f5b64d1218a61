package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-boom/source-manager/internal/core/domain"
)

func testRegions() []domain.Region {
	return []domain.Region{
		{Name: "europe", DirectoryPatterns: []string{"**/Europe/**", "**/EUR/**"}, SourceFile: "europe_sources.json", Priority: 100},
		{Name: "pacific", DirectoryPatterns: []string{"**/Pacific/**"}, SourceFile: "pacific_sources.json", Priority: 100},
		{Name: "global", DirectoryPatterns: []string{domain.CatchAllPattern}, SourceFile: "global_sources.json", Priority: 0},
	}
}

func TestNewRouter_RejectsInvalidTable(t *testing.T) {
	_, err := NewRouter([]domain.Region{
		{Name: "europe", DirectoryPatterns: []string{"**/Europe/**"}, SourceFile: "e.json", Priority: 1},
	})
	assert.ErrorIs(t, err, domain.ErrNoCatchAll)
}

func TestRouter_ResolveRegion(t *testing.T) {
	router, err := NewRouter(testRegions())
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"europe directory", "/projects/Europe/2023123001/plan.json", "europe"},
		{"europe alias", "/data/EUR/site/plan.json", "europe"},
		{"pacific directory", "/projects/Pacific/x/y.json", "pacific"},
		{"unmatched falls to catch-all", "/projects/Other/plan.json", "global"},
		{"root path", "/", "global"},
		{"relative path", "somewhere/else.json", "global"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, router.ResolveRegion(tt.path))
		})
	}
}

func TestRouter_ResolveRegion_Total(t *testing.T) {
	// Routing never fails to produce a region, whatever the path.
	router, err := NewRouter(testRegions())
	require.NoError(t, err)

	names := map[string]bool{}
	for _, r := range testRegions() {
		names[r.Name] = true
	}

	paths := []string{
		"", ".", "..", "/", "//", "/a", "relative", "with space/file.json",
		"/deep/very/deep/Europe/x/y/z.json", "C:/Users/e/project.json",
	}
	for _, p := range paths {
		got := router.ResolveRegion(p)
		assert.True(t, names[got], "path %q resolved to unknown region %q", p, got)
	}
}

func TestRouter_HighestPriorityWins(t *testing.T) {
	// Both patterns match; the higher priority region is chosen even
	// when declared later.
	regions := []domain.Region{
		{Name: "global", DirectoryPatterns: []string{domain.CatchAllPattern}, SourceFile: "g.json", Priority: 0},
		{Name: "broad", DirectoryPatterns: []string{"**/shared/**"}, SourceFile: "b.json", Priority: 10},
		{Name: "narrow", DirectoryPatterns: []string{"**/shared/special/**"}, SourceFile: "n.json", Priority: 20},
	}
	router, err := NewRouter(regions)
	require.NoError(t, err)

	assert.Equal(t, "narrow", router.ResolveRegion("/x/shared/special/p.json"))
	assert.Equal(t, "broad", router.ResolveRegion("/x/shared/other/p.json"))
}

func TestRouter_DeclarationOrderBreaksTies(t *testing.T) {
	regions := []domain.Region{
		{Name: "first", DirectoryPatterns: []string{"**/both/**"}, SourceFile: "f.json", Priority: 10},
		{Name: "second", DirectoryPatterns: []string{"**/both/**"}, SourceFile: "s.json", Priority: 10},
		{Name: "global", DirectoryPatterns: []string{domain.CatchAllPattern}, SourceFile: "g.json", Priority: 0},
	}
	router, err := NewRouter(regions)
	require.NoError(t, err)

	assert.Equal(t, "first", router.ResolveRegion("/a/both/p.json"))
}
