package services

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/logger"
)

// Router resolves which region owns a project path. Resolution is pure
// and total: the catch-all region guarantees every path matches.
type Router struct {
	// regions sorted by priority descending; ties keep declaration order.
	regions  []domain.Region
	catchAll string
}

// NewRouter creates a router over a validated region table.
func NewRouter(regions []domain.Region) (*Router, error) {
	if err := domain.ValidateRegions(regions); err != nil {
		return nil, err
	}

	sorted := make([]domain.Region, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	catchAll, _ := domain.CatchAllRegion(regions)
	return &Router{regions: sorted, catchAll: catchAll.Name}, nil
}

// ResolveRegion returns the name of the highest-priority region with a
// pattern matching the given project path. The first matching pattern
// of the first matching region wins.
func (r *Router) ResolveRegion(projectPath string) string {
	path := normalizePath(projectPath)

	for _, region := range r.regions {
		for _, pattern := range region.DirectoryPatterns {
			ok, err := doublestar.Match(pattern, path)
			if err != nil {
				logger.Warn("region %s: bad pattern %q: %v", region.Name, pattern, err)
				continue
			}
			if ok {
				logger.Debug("resolved %s -> %s (pattern %q)", path, region.Name, pattern)
				return region.Name
			}
		}
	}

	// Unreachable with a validated table; the catch-all matches
	// everything. Kept so resolution stays total even if a pattern is
	// malformed at runtime.
	logger.Warn("no region matched %s, falling back to %s", path, r.catchAll)
	return r.catchAll
}

// normalizePath makes a path absolute and slash-separated so patterns
// behave the same on every platform.
func normalizePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	return filepath.ToSlash(abs)
}
