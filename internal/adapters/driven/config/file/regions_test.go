package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-boom/source-manager/internal/core/domain"
)

func TestLoadRegions_DefaultsWhenMissing(t *testing.T) {
	regions, err := LoadRegions(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRegions, regions)
}

func TestLoadRegions_FromFile(t *testing.T) {
	dir := t.TempDir()
	table := `
[[regions]]
name = "lab"
display_name = "Lab"
description = "Lab projects"
directory_patterns = ["**/lab/**"]
source_file = "lab_sources.json"
priority = 10

[[regions]]
name = "global"
display_name = "Global"
description = "Catch-all"
directory_patterns = ["**"]
source_file = "global_sources.json"
priority = 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regions.toml"), []byte(table), 0o600))

	regions, err := LoadRegions(dir)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "lab", regions[0].Name)
	assert.Equal(t, []string{"**/lab/**"}, regions[0].DirectoryPatterns)
}

func TestLoadRegions_RejectsTableWithoutCatchAll(t *testing.T) {
	dir := t.TempDir()
	table := `
[[regions]]
name = "lab"
directory_patterns = ["**/lab/**"]
source_file = "lab_sources.json"
priority = 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regions.toml"), []byte(table), 0o600))

	_, err := LoadRegions(dir)
	assert.ErrorIs(t, err, domain.ErrNoCatchAll)
}

func TestLoadRegions_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regions.toml"), []byte("[[["), 0o600))

	_, err := LoadRegions(dir)
	assert.Error(t, err)
}
