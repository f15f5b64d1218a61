package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-boom/source-manager/internal/core/domain"
)

func testRegions() []domain.Region {
	return []domain.Region{
		{Name: "europe", DirectoryPatterns: []string{"**/Europe/**"}, SourceFile: "europe_sources.json", Priority: 100},
		{Name: "global", DirectoryPatterns: []string{domain.CatchAllPattern}, SourceFile: "global_sources.json", Priority: 0},
	}
}

func newTestStore(t *testing.T) *RegionStore {
	t.Helper()
	store, err := NewRegionStore(testRegions())
	require.NoError(t, err)
	return store
}

func TestRegionStore_AddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "src_"))

	region, sources, err := store.ListSources(ctx, "europe")
	require.NoError(t, err)
	assert.Equal(t, "europe", region)
	require.Len(t, sources, 1)
	assert.Equal(t, "T1", sources[0].Title)
}

func TestRegionStore_ListSources_Empty(t *testing.T) {
	store := newTestStore(t)
	_, sources, err := store.ListSources(context.Background(), "europe")
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestRegionStore_UpdateSource_Miss(t *testing.T) {
	store := newTestStore(t)
	title := "x"
	ok, err := store.UpdateSource(context.Background(), "europe", "src_1", domain.SourcePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegionStore_UpdateSource(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "Old"})
	require.NoError(t, err)

	title := "New"
	ok, err := store.UpdateSource(ctx, "europe", id, domain.SourcePatch{Title: &title})
	require.NoError(t, err)
	assert.True(t, ok)

	_, sources, err := store.ListSources(ctx, "europe")
	require.NoError(t, err)
	assert.Equal(t, "New", sources[0].Title)
}

func TestRegionStore_DuplicateIDRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddSource(ctx, "europe", domain.SourceRecord{ID: "src_1", Title: "T"})
	require.NoError(t, err)
	_, err = store.AddSource(ctx, "europe", domain.SourceRecord{ID: "src_1", Title: "T2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegionStore_UnknownRegionFallsToCatchAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddSource(ctx, "atlantis", domain.SourceRecord{Title: "T"})
	require.NoError(t, err)

	_, sources, err := store.ListSources(ctx, "global")
	require.NoError(t, err)
	assert.Len(t, sources, 1)
	assert.Equal(t, "global_sources.json", store.SourceFilePath("atlantis"))
}

func TestRegionStore_ListRegions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T"})
	require.NoError(t, err)

	infos, err := store.ListRegions(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 1, infos[0].SourceCount)
	assert.Equal(t, 0, infos[1].SourceCount)
}
