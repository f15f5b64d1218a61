package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/core/ports/driven"
	"github.com/j-boom/source-manager/internal/logger"
)

// Ensure RegionStore implements the interface.
var _ driven.RegionStore = (*RegionStore)(nil)

const (
	sourceIDPrefix = "src_"
	maxIDAttempts  = 5

	// lockTimeout bounds how long a read-modify-write waits for the
	// advisory lock when the caller's context has no deadline.
	lockTimeout = 5 * time.Second

	// lockRetryInterval is how often flock re-attempts acquisition.
	lockRetryInterval = 50 * time.Millisecond
)

// RegionStore persists one JSON document per region under a
// master-sources root. Every mutation is a full read-modify-write of
// the document, guarded by a per-region in-process mutex plus an OS
// advisory file lock so concurrent processes never interleave, and
// persisted with a temp-file-and-rename so a crash never leaves a
// half-written document.
type RegionStore struct {
	root     string
	regions  []domain.Region
	byName   map[string]domain.Region
	catchAll domain.Region

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRegionStore creates a store rooted at the given directory,
// creating it if needed. The region table must contain a catch-all.
func NewRegionStore(root string, regions []domain.Region) (*RegionStore, error) {
	if root == "" {
		return nil, fmt.Errorf("master-sources root: %w", domain.ErrInvalidInput)
	}
	if err := domain.ValidateRegions(regions); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("creating master-sources root: %w", err)
	}

	byName := make(map[string]domain.Region, len(regions))
	for _, r := range regions {
		byName[r.Name] = r
	}
	catchAll, _ := domain.CatchAllRegion(regions)

	return &RegionStore{
		root:     root,
		regions:  regions,
		byName:   byName,
		catchAll: catchAll,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// Root returns the master-sources root directory.
func (s *RegionStore) Root() string {
	return s.root
}

// SourceFilePath maps a region name to its document path. Unknown
// names fall back to the catch-all document.
func (s *RegionStore) SourceFilePath(region string) string {
	r, ok := s.byName[region]
	if !ok {
		r = s.catchAll
	}
	return filepath.Join(s.root, r.SourceFile)
}

// ListSources returns the region's records. A missing or unparsable
// document yields an empty list: the caller is never blocked by a
// corrupt file, but the failure is logged.
func (s *RegionStore) ListSources(ctx context.Context, region string) (string, []domain.SourceRecord, error) {
	if err := ctx.Err(); err != nil {
		return region, nil, err
	}

	doc, err := s.loadDocument(s.SourceFilePath(region))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return region, []domain.SourceRecord{}, nil
	case errors.Is(err, domain.ErrDocumentParse):
		logger.Warn("region %s: %v; treating document as empty", region, err)
		return region, []domain.SourceRecord{}, nil
	case err != nil:
		return region, nil, err
	}
	return region, doc.Sources, nil
}

// AddSource appends a record to the region document, generating an id
// when the record has none, and returns the id actually stored.
func (s *RegionStore) AddSource(ctx context.Context, region string, record domain.SourceRecord) (string, error) {
	var id string
	err := s.withDocument(ctx, region, func(doc *domain.RegionDocument) (bool, error) {
		if record.ID == "" {
			record.ID = generateSourceID(doc)
		} else if doc.HasSource(record.ID) {
			return false, fmt.Errorf("source %s already exists: %w", record.ID, domain.ErrInvalidInput)
		}
		id = record.ID
		doc.Sources = append(doc.Sources, record)
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateSource applies a patch to the record with the given id. It
// returns false, without touching the document, when the document or
// the id does not exist.
func (s *RegionStore) UpdateSource(ctx context.Context, region, id string, patch domain.SourcePatch) (bool, error) {
	path := s.SourceFilePath(region)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	found := false
	err := s.withDocument(ctx, region, func(doc *domain.RegionDocument) (bool, error) {
		record, ok := doc.FindSource(id)
		if !ok {
			return false, nil
		}
		record.Apply(patch)
		found = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// ListRegions enumerates the static region configuration. Source
// counts are opportunistic: a failure to read or parse one document
// logs a warning and reports zero rather than failing the listing.
func (s *RegionStore) ListRegions(ctx context.Context) ([]domain.RegionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos := make([]domain.RegionInfo, 0, len(s.regions))
	for _, r := range s.regions {
		count := 0
		doc, err := s.loadDocument(filepath.Join(s.root, r.SourceFile))
		switch {
		case err == nil:
			count = len(doc.Sources)
		case errors.Is(err, os.ErrNotExist):
			// no document yet
		default:
			logger.Warn("region %s: counting sources: %v", r.Name, err)
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

// withDocument runs one read-modify-write cycle on a region document
// under both the per-region mutex and the advisory file lock. The
// mutation reports whether the document changed; unchanged documents
// are not rewritten.
func (s *RegionStore) withDocument(ctx context.Context, region string, mutate func(*domain.RegionDocument) (bool, error)) error {
	if _, ok := s.byName[region]; !ok {
		logger.Debug("unknown region %q, using catch-all document", region)
	}
	path := s.SourceFilePath(region)

	lock := s.regionLock(region)
	lock.Lock()
	defer lock.Unlock()

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lockTimeout)
		defer cancel()
	}

	fileLock := flock.New(path + ".lock")
	locked, err := fileLock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("locking %s: timed out", path)
	}
	defer func() {
		if err := fileLock.Unlock(); err != nil {
			logger.Warn("unlocking %s: %v", path, err)
		}
	}()

	doc, err := s.loadDocument(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		doc = domain.NewRegionDocument(region)
	case errors.Is(err, domain.ErrDocumentParse):
		// A corrupt document is not silently replaced; mutations fail
		// until someone repairs or removes it.
		return err
	case err != nil:
		return err
	}

	changed, err := mutate(doc)
	if err != nil || !changed {
		return err
	}

	doc.Touch()
	return s.writeDocument(path, doc)
}

// regionLock returns the in-process mutex for a region, creating it on
// first use.
func (s *RegionStore) regionLock(region string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[region]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[region] = lock
	}
	return lock
}

// loadDocument reads and parses a region document. Parse failures are
// reported as domain.ErrDocumentParse so callers can recover.
func (s *RegionStore) loadDocument(path string) (*domain.RegionDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc domain.RegionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, domain.ErrDocumentParse)
	}
	return &doc, nil
}

// writeDocument persists a document atomically: write a temp file in
// the same directory, then rename over the target.
func (s *RegionStore) writeDocument(path string, doc *domain.RegionDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// generateSourceID returns a short prefixed id not present in the
// document. Collisions are retried a bounded number of times before
// falling back to a timestamp-derived id.
func generateSourceID(doc *domain.RegionDocument) string {
	for i := 0; i < maxIDAttempts; i++ {
		id := sourceIDPrefix + uuid.New().String()[:8]
		if !doc.HasSource(id) {
			return id
		}
	}
	return sourceIDPrefix + strconv.FormatInt(time.Now().UnixNano(), 36)
}
