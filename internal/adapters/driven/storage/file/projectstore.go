package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/core/ports/driven"
)

// Ensure ProjectStore implements the interface.
var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore reads and writes project JSON files. Writes are atomic;
// Backup copies the original aside so migration never destroys the
// only copy of a legacy record.
type ProjectStore struct{}

// NewProjectStore creates a new project file store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{}
}

// Load reads a canonical project record.
func (s *ProjectStore) Load(ctx context.Context, path string) (*domain.ProjectRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var record domain.ProjectRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, domain.ErrDocumentParse)
	}
	return &record, nil
}

// LoadRaw reads a project file as an untyped JSON object. Legacy files
// predate the canonical model, so the shape is preserved as-is.
func (s *ProjectStore) LoadRaw(ctx context.Context, path string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, domain.ErrDocumentParse)
	}
	return raw, nil
}

// Save writes a canonical project record atomically via a temp file
// and rename in the target directory.
func (s *ProjectStore) Save(ctx context.Context, path string, record *domain.ProjectRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record == nil {
		return domain.ErrInvalidInput
	}

	data, err := json.MarshalIndent(record, "", "  ")
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

// Backup copies the file to "<path>.bak-<timestamp>" and returns the
// backup path.
func (s *ProjectStore) Backup(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	backupPath := fmt.Sprintf("%s.bak-%s", path, time.Now().UTC().Format("20060102T150405"))
	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", backupPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(backupPath)
		return "", fmt.Errorf("copying to %s: %w", backupPath, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("closing %s: %w", backupPath, err)
	}
	return backupPath, nil
}
