package services

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/logger"
)

// Legacy project files carry these top-level sections. Key names match
// the historical on-disk schema, not the canonical one.
const (
	legacySiteProperties = "site_properties"
	legacyTeam           = "team"
	legacyKeyCites       = "key_cites"
	legacySources        = "sources"

	legacySiteName      = "site name"
	legacySiteSurrogate = "site surrogate"
	legacyComment       = "comment"

	// Dropped on migration, never carried forward.
	legacyClassification = "classification"
	legacyDateAccessed   = "date_accessed"

	canonicalMarker = "project_metadata"
)

// FilenameParts are the four fields derived from a legacy filename of
// the form "<facility-id> - <suffix> - <project-type> - <year>.json".
type FilenameParts struct {
	FacilityID  string
	Suffix      string
	ProjectType string
	Year        string
}

// ParseProjectFilename splits a legacy filename into its four
// dash-delimited segments. Fewer than four segments is ErrBadFilename.
func ParseProjectFilename(filename string) (FilenameParts, error) {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	segments := strings.Split(base, " - ")
	if len(segments) < 4 {
		return FilenameParts{}, fmt.Errorf("%q: %w", filename, domain.ErrBadFilename)
	}
	return FilenameParts{
		FacilityID:  strings.TrimSpace(segments[0]),
		Suffix:      strings.TrimSpace(segments[1]),
		ProjectType: strings.TrimSpace(segments[2]),
		Year:        strings.TrimSpace(segments[3]),
	}, nil
}

// Migrate transforms a legacy project record into the canonical schema.
// It is pure: the caller decides where (and whether) to write the result.
//
// A malformed filename is recovered: all four derived fields stay empty,
// a warning is logged, and migration continues. Already-canonical input
// is rejected with ErrAlreadyCanonical so a second pass cannot silently
// produce a degenerate record.
func Migrate(legacy map[string]any, filename string) (*domain.ProjectRecord, error) {
	if legacy == nil {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := legacy[canonicalMarker]; ok {
		return nil, fmt.Errorf("%s: %w", filename, domain.ErrAlreadyCanonical)
	}

	parts, err := ParseProjectFilename(filename)
	if err != nil {
		logger.Warn("migrate %s: %v; continuing with empty facility fields", filename, err)
		parts = FilenameParts{}
	}

	record := &domain.ProjectRecord{
		Metadata: domain.ProjectMetadata{
			ProjectID:   uuid.New().String(),
			ProjectType: parts.ProjectType,
			Title:       stringField(legacy, "title"),
			FilePath:    derivedFilePath(parts),
			Requestor:   stringField(legacy, "requestor"),
			RequestYear: parts.Year,
			Relook:      boolField(legacy, "relook"),
		},
		Team:      legacy[legacyTeam],
		KeyCites:  legacy[legacyKeyCites],
		Facility:  migrateFacility(legacy, parts),
		SlideData: domain.SlideData{Citations: []domain.ProjectCitation{}},
		Sources:   migrateSources(legacy, filename),

		PowerPointFile:        stringField(legacy, "powerpoint_file"),
		NumberHeaderCitations: intField(legacy, "number_header_citations"),
	}
	return record, nil
}

// migrateFacility remaps legacy site_properties to facility_information.
// The facility id and code come from the parsed filename, not the legacy
// record; the classification tag and access date are dropped.
func migrateFacility(legacy map[string]any, parts FilenameParts) domain.FacilityInfo {
	info := domain.FacilityInfo{
		FacilityID:   parts.FacilityID,
		FacilityCode: parts.Suffix,
	}

	site, ok := legacy[legacySiteProperties].(map[string]any)
	if !ok {
		return info
	}
	info.FacilityName = stringField(site, legacySiteName)
	info.SurrogateKey = stringField(site, legacySiteSurrogate)

	// legacyClassification and legacyDateAccessed are intentionally not
	// read: they do not exist in the canonical schema.
	return info
}

// migrateSources reduces legacy full source objects to references:
// uuid, 1-based order by original position, and usage notes renamed
// from "comment". Entries without a uuid are skipped with a warning.
func migrateSources(legacy map[string]any, filename string) []domain.ProjectSource {
	raw, ok := legacy[legacySources].([]any)
	if !ok {
		return []domain.ProjectSource{}
	}

	out := make([]domain.ProjectSource, 0, len(raw))
	for i, entry := range raw {
		src, ok := entry.(map[string]any)
		if !ok {
			logger.Warn("migrate %s: source %d is not an object, skipping", filename, i)
			continue
		}
		id := stringField(src, "uuid")
		if id == "" {
			logger.Warn("migrate %s: source %d has no uuid, skipping", filename, i)
			continue
		}
		out = append(out, domain.ProjectSource{
			UUID:       id,
			Order:      i + 1,
			UsageNotes: stringField(src, legacyComment),
		})
	}
	return out
}

// derivedFilePath builds the canonical project location from the parsed
// facility id and year: "<4-digit prefix>/<facility-id>/<year>". Empty
// parts yield an empty path.
func derivedFilePath(parts FilenameParts) string {
	if parts.FacilityID == "" || parts.Year == "" {
		return ""
	}
	prefix := parts.FacilityID
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return path.Join(prefix, parts.FacilityID, parts.Year)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		// encoding/json decodes numbers as float64
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
