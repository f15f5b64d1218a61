package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-boom/source-manager/internal/core/domain"
)

func TestRegionsList(t *testing.T) {
	swapSourceService(t, &mockSourceService{
		regions: []domain.RegionInfo{
			{
				Name:        "europe",
				DisplayName: "Europe",
				Description: "European projects",
				SourceCount: 7,
				SourceFile:  "europe_sources.json",
			},
		},
	})

	out, err := execute(t, "regions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Europe (europe)")
	assert.Contains(t, out, "European projects")
	assert.Contains(t, out, "europe_sources.json")
	assert.Contains(t, out, "Sources: 7")
}

func TestRegionsCmd_DefaultsToList(t *testing.T) {
	swapSourceService(t, &mockSourceService{})

	_, err := execute(t, "regions")
	assert.NoError(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "srcmgr version")
}
