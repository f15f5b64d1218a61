package domain

// SourceScope defines how widely a source record is shared.
type SourceScope string

const (
	// ScopeRegional shares the record with every project in its region.
	ScopeRegional SourceScope = "regional"
	// ScopeGlobal shares the record across all regions.
	ScopeGlobal SourceScope = "global"
	// ScopeProject restricts the record to the project that created it.
	ScopeProject SourceScope = "project"
)

// CatchAllPattern matches every path. The catch-all region must carry it.
const CatchAllPattern = "**"

// Region is a named logical partition of shared source records.
// Regions are statically configured and never created at runtime.
type Region struct {
	// Name is the unique identifier for the region (e.g., "europe").
	Name string `toml:"name"`

	// DisplayName is the human-readable name for CLI output.
	DisplayName string `toml:"display_name"`

	// Description explains which projects the region covers.
	Description string `toml:"description"`

	// DirectoryPatterns are glob patterns matched against project paths.
	// "**" matches any number of path segments.
	DirectoryPatterns []string `toml:"directory_patterns"`

	// SourceFile is the name of the region's document under the
	// master-sources root.
	SourceFile string `toml:"source_file"`

	// Priority orders regions during routing, highest first.
	// The catch-all region must have the lowest priority.
	Priority int `toml:"priority"`
}

// IsCatchAll reports whether any of the region's patterns matches every path.
func (r *Region) IsCatchAll() bool {
	for _, p := range r.DirectoryPatterns {
		if p == CatchAllPattern {
			return true
		}
	}
	return false
}

// RegionInfo is the enumeration view of a region: static configuration
// plus an opportunistic source count.
type RegionInfo struct {
	Name        string
	DisplayName string
	Description string
	SourceCount int
	SourceFile  string
}

// DefaultRegions is the built-in region table. A regions.toml file under
// the config directory overrides it.
var DefaultRegions = []Region{
	{
		Name:              "europe",
		DisplayName:       "Europe",
		Description:       "Projects under European facility directories",
		DirectoryPatterns: []string{"**/Europe/**", "**/EUR/**"},
		SourceFile:        "europe_sources.json",
		Priority:          100,
	},
	{
		Name:              "pacific",
		DisplayName:       "Pacific",
		Description:       "Projects under Pacific facility directories",
		DirectoryPatterns: []string{"**/Pacific/**", "**/PAC/**"},
		SourceFile:        "pacific_sources.json",
		Priority:          100,
	},
	{
		Name:              "americas",
		DisplayName:       "Americas",
		Description:       "Projects under Americas facility directories",
		DirectoryPatterns: []string{"**/Americas/**", "**/AMER/**"},
		SourceFile:        "americas_sources.json",
		Priority:          100,
	},
	{
		Name:              "global",
		DisplayName:       "Global",
		Description:       "Catch-all for projects outside any regional directory",
		DirectoryPatterns: []string{CatchAllPattern},
		SourceFile:        "global_sources.json",
		Priority:          0,
	},
}

// CatchAllRegion returns the catch-all region from the given table.
// The second return is false when the table has none.
func CatchAllRegion(regions []Region) (Region, bool) {
	for _, r := range regions {
		if r.IsCatchAll() {
			return r, true
		}
	}
	return Region{}, false
}

// ValidateRegions checks the routing invariants of a region table:
// every region is well-formed, names are unique, and exactly one
// catch-all region exists with strictly the lowest priority.
func ValidateRegions(regions []Region) error {
	if len(regions) == 0 {
		return ErrNoCatchAll
	}

	seen := make(map[string]bool, len(regions))
	catchAlls := 0
	catchAllPriority := 0

	for _, r := range regions {
		if r.Name == "" || r.SourceFile == "" || len(r.DirectoryPatterns) == 0 {
			return ErrInvalidInput
		}
		if seen[r.Name] {
			return ErrInvalidInput
		}
		seen[r.Name] = true
		if r.IsCatchAll() {
			catchAlls++
			catchAllPriority = r.Priority
		}
	}

	if catchAlls != 1 {
		return ErrNoCatchAll
	}
	for _, r := range regions {
		if !r.IsCatchAll() && r.Priority <= catchAllPriority {
			return ErrNoCatchAll
		}
	}
	return nil
}
