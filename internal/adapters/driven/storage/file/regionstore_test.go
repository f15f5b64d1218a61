package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-boom/source-manager/internal/core/domain"
)

func testRegions() []domain.Region {
	return []domain.Region{
		{
			Name:              "europe",
			DisplayName:       "Europe",
			Description:       "European projects",
			DirectoryPatterns: []string{"**/Europe/**"},
			SourceFile:        "europe_sources.json",
			Priority:          100,
		},
		{
			Name:              "global",
			DisplayName:       "Global",
			Description:       "Catch-all",
			DirectoryPatterns: []string{domain.CatchAllPattern},
			SourceFile:        "global_sources.json",
			Priority:          0,
		},
	}
}

func newTestStore(t *testing.T) *RegionStore {
	t.Helper()
	store, err := NewRegionStore(t.TempDir(), testRegions())
	require.NoError(t, err)
	return store
}

func TestNewRegionStore_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "master_sources")
	_, err := NewRegionStore(root, testRegions())
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewRegionStore_RejectsBadTable(t *testing.T) {
	_, err := NewRegionStore(t.TempDir(), []domain.Region{
		{Name: "europe", DirectoryPatterns: []string{"**/Europe/**"}, SourceFile: "e.json", Priority: 1},
	})
	assert.ErrorIs(t, err, domain.ErrNoCatchAll)

	_, err = NewRegionStore("", testRegions())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegionStore_SourceFilePath(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, filepath.Join(store.Root(), "europe_sources.json"), store.SourceFilePath("europe"))
	// Unknown regions fall back to the catch-all document.
	assert.Equal(t, filepath.Join(store.Root(), "global_sources.json"), store.SourceFilePath("atlantis"))
}

func TestRegionStore_ListSources_MissingDocument(t *testing.T) {
	store := newTestStore(t)

	region, sources, err := store.ListSources(context.Background(), "europe")
	require.NoError(t, err)
	assert.Equal(t, "europe", region)
	assert.Empty(t, sources)
}

func TestRegionStore_ListSources_UnparsableDocument(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.SourceFilePath("europe"), []byte("{corrupt"), 0o600))

	_, sources, err := store.ListSources(context.Background(), "europe")
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestRegionStore_AddSource_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id1, "src_"))

	id2, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T2"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	_, sources, err := store.ListSources(ctx, "europe")
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "T1", sources[0].Title)
	assert.Equal(t, "T2", sources[1].Title)
}

func TestRegionStore_AddSource_MetadataInvariants(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T1"})
	require.NoError(t, err)
	_, err = store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T2"})
	require.NoError(t, err)

	data, err := os.ReadFile(store.SourceFilePath("europe"))
	require.NoError(t, err)

	var doc domain.RegionDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, domain.DocumentVersion, doc.Metadata.Version)
	assert.Equal(t, "europe", doc.Metadata.Region)
	assert.Equal(t, len(doc.Sources), doc.Metadata.TotalSources)
	assert.False(t, doc.Metadata.LastUpdated.IsZero())
}

func TestRegionStore_AddSource_KeepsCallerID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddSource(ctx, "europe", domain.SourceRecord{ID: "src_custom01", Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, "src_custom01", id)

	// A duplicate caller-supplied id is rejected, never silently doubled.
	_, err = store.AddSource(ctx, "europe", domain.SourceRecord{ID: "src_custom01", Title: "T2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegionStore_AddSource_NoDuplicateIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		_, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T"})
		require.NoError(t, err)
	}

	_, sources, err := store.ListSources(ctx, "europe")
	require.NoError(t, err)
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestRegionStore_UpdateSource(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "Old", Author: "Keep"})
	require.NoError(t, err)

	title := "New"
	ok, err := store.UpdateSource(ctx, "europe", id, domain.SourcePatch{Title: &title})
	require.NoError(t, err)
	assert.True(t, ok)

	_, sources, err := store.ListSources(ctx, "europe")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "New", sources[0].Title)
	assert.Equal(t, "Keep", sources[0].Author)
}

func TestRegionStore_UpdateSource_MissingID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T"})
	require.NoError(t, err)

	before, err := os.ReadFile(store.SourceFilePath("europe"))
	require.NoError(t, err)

	title := "x"
	ok, err := store.UpdateSource(ctx, "europe", "src_missing", domain.SourcePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok)

	// The document, including last_updated, is untouched.
	after, err := os.ReadFile(store.SourceFilePath("europe"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegionStore_UpdateSource_MissingDocument(t *testing.T) {
	store := newTestStore(t)

	title := "x"
	ok, err := store.UpdateSource(context.Background(), "europe", "src_1", domain.SourcePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok)

	_, statErr := os.Stat(store.SourceFilePath("europe"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRegionStore_ListRegions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T"})
	require.NoError(t, err)
	// Corrupt document: the count is swallowed to zero, not an error.
	require.NoError(t, os.WriteFile(store.SourceFilePath("global"), []byte("{bad"), 0o600))

	infos, err := store.ListRegions(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "europe", infos[0].Name)
	assert.Equal(t, "Europe", infos[0].DisplayName)
	assert.Equal(t, 1, infos[0].SourceCount)
	assert.Equal(t, "europe_sources.json", infos[0].SourceFile)

	assert.Equal(t, "global", infos[1].Name)
	assert.Equal(t, 0, infos[1].SourceCount)
}

func TestRegionStore_UnknownRegionUsesCatchAllDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddSource(ctx, "atlantis", domain.SourceRecord{Title: "T"})
	require.NoError(t, err)

	_, err = os.Stat(store.SourceFilePath("global"))
	assert.NoError(t, err)
}

func TestRegionStore_ExtraFieldsSurviveRewrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddSource(ctx, "europe", domain.SourceRecord{
		Title: "T",
		Extra: map[string]any{"volume": "12"},
	})
	require.NoError(t, err)

	_, err = store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T2"})
	require.NoError(t, err)

	_, sources, err := store.ListSources(ctx, "europe")
	require.NoError(t, err)
	for _, s := range sources {
		if s.ID == id {
			assert.Equal(t, "12", s.Extra["volume"])
			return
		}
	}
	t.Fatalf("source %s not found", id)
}

func TestRegionStore_NoTempFilesLeftBehind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.AddSource(ctx, "europe", domain.SourceRecord{Title: "T"})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestRegionStore_CorruptDocumentBlocksMutation(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.SourceFilePath("europe"), []byte("{bad"), 0o600))

	_, err := store.AddSource(context.Background(), "europe", domain.SourceRecord{Title: "T"})
	assert.ErrorIs(t, err, domain.ErrDocumentParse)
}
