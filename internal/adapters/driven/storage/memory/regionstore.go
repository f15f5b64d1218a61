package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/core/ports/driven"
)

// Ensure RegionStore implements the interface.
var _ driven.RegionStore = (*RegionStore)(nil)

// RegionStore is an in-memory implementation of driven.RegionStore,
// used by service tests. It mirrors the file store's semantics: id
// generation with collision checks, metadata refresh on write, and
// false-without-mutation on update misses.
type RegionStore struct {
	mu       sync.RWMutex
	regions  []domain.Region
	byName   map[string]domain.Region
	catchAll domain.Region
	docs     map[string]*domain.RegionDocument
}

// NewRegionStore creates a new in-memory region store.
func NewRegionStore(regions []domain.Region) (*RegionStore, error) {
	if err := domain.ValidateRegions(regions); err != nil {
		return nil, err
	}
	byName := make(map[string]domain.Region, len(regions))
	for _, r := range regions {
		byName[r.Name] = r
	}
	catchAll, _ := domain.CatchAllRegion(regions)
	return &RegionStore{
		regions:  regions,
		byName:   byName,
		catchAll: catchAll,
		docs:     make(map[string]*domain.RegionDocument),
	}, nil
}

// SourceFilePath maps a region name to its configured document name.
func (s *RegionStore) SourceFilePath(region string) string {
	r, ok := s.byName[region]
	if !ok {
		r = s.catchAll
	}
	return r.SourceFile
}

// resolved returns the region name a request lands on, applying the
// catch-all fallback for unknown names.
func (s *RegionStore) resolved(region string) string {
	if _, ok := s.byName[region]; ok {
		return region
	}
	return s.catchAll.Name
}

// ListSources returns the region's records.
func (s *RegionStore) ListSources(_ context.Context, region string) (string, []domain.SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[s.resolved(region)]
	if !ok {
		return region, []domain.SourceRecord{}, nil
	}
	out := make([]domain.SourceRecord, len(doc.Sources))
	copy(out, doc.Sources)
	return region, out, nil
}

// AddSource appends a record, generating an id when needed.
func (s *RegionStore) AddSource(_ context.Context, region string, record domain.SourceRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.resolved(region)
	doc, ok := s.docs[name]
	if !ok {
		doc = domain.NewRegionDocument(name)
		s.docs[name] = doc
	}

	if record.ID == "" {
		record.ID = generateID(doc)
	} else if doc.HasSource(record.ID) {
		return "", fmt.Errorf("source %s already exists: %w", record.ID, domain.ErrInvalidInput)
	}
	doc.Sources = append(doc.Sources, record)
	doc.Touch()
	return record.ID, nil
}

// UpdateSource patches a record in place.
func (s *RegionStore) UpdateSource(_ context.Context, region, id string, patch domain.SourcePatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[s.resolved(region)]
	if !ok {
		return false, nil
	}
	record, ok := doc.FindSource(id)
	if !ok {
		return false, nil
	}
	record.Apply(patch)
	doc.Touch()
	return true, nil
}

// ListRegions enumerates the configured regions with counts.
func (s *RegionStore) ListRegions(_ context.Context) ([]domain.RegionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]domain.RegionInfo, 0, len(s.regions))
	for _, r := range s.regions {
		count := 0
		if doc, ok := s.docs[r.Name]; ok {
			count = len(doc.Sources)
		}
		infos = append(infos, domain.RegionInfo{
			Name:        r.Name,
			DisplayName: r.DisplayName,
			Description: r.Description,
			SourceCount: count,
			SourceFile:  r.SourceFile,
		})
	}
	return infos, nil
}

func generateID(doc *domain.RegionDocument) string {
	for i := 0; i < 5; i++ {
		id := "src_" + uuid.New().String()[:8]
		if !doc.HasSource(id) {
			return id
		}
	}
	return "src_" + strconv.FormatInt(time.Now().UnixNano(), 36)
}
