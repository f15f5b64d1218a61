package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/j-boom/source-manager/internal/core/domain"
)

// regionsFile is the optional region table override in the config dir.
const regionsFile = "regions.toml"

type regionTable struct {
	Regions []domain.Region `toml:"regions"`
}

// LoadRegions reads the region table from regions.toml in the config
// directory. When the file is absent the built-in table is returned.
// The result is always validated: a table without exactly one
// lowest-priority catch-all region is rejected, because routing would
// no longer be total.
func LoadRegions(configDir string) ([]domain.Region, error) {
	path := filepath.Join(configDir, regionsFile)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return domain.DefaultRegions, nil
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var table regionTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := domain.ValidateRegions(table.Regions); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table.Regions, nil
}
