package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS sources (
	region    TEXT NOT NULL,
	source_id TEXT NOT NULL,
	title     TEXT NOT NULL DEFAULT '',
	author    TEXT NOT NULL DEFAULT '',
	year      TEXT NOT NULL DEFAULT '',
	scope     TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (region, source_id)
);
CREATE INDEX IF NOT EXISTS idx_sources_region ON sources(region);
`

// ReportStore is a SQLite-backed analytics index over region documents.
// It is a strictly read-only consumer of the JSON documents: the index
// is derived data and can be rebuilt at any time.
type ReportStore struct {
	db   *sql.DB
	path string
}

// NewReportStore opens (or creates) the reporting database under the
// given directory.
func NewReportStore(dataDir string) (*ReportStore, error) {
	if dataDir == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reports.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &ReportStore{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *ReportStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *ReportStore) Path() string {
	return s.path
}

// ReplaceRegion replaces every indexed row for one region in a single
// transaction.
func (s *ReportStore) ReplaceRegion(ctx context.Context, region string, sources []domain.SourceRecord) error {
	if region == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE region = ?`, region); err != nil {
		return fmt.Errorf("clearing region %s: %w", region, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sources (region, source_id, title, author, year, scope) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, src := range sources {
		if _, err := stmt.ExecContext(ctx, region, src.ID, src.Title, src.Author, src.Year, string(src.Scope)); err != nil {
			return fmt.Errorf("indexing source %s: %w", src.ID, err)
		}
	}
	return tx.Commit()
}

// Summary returns per-region source counts, ordered by region name.
func (s *ReportStore) Summary(ctx context.Context) ([]driven.RegionCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT region, COUNT(*) FROM sources GROUP BY region ORDER BY region`)
	if err != nil {
		return nil, fmt.Errorf("querying summary: %w", err)
	}
	defer rows.Close()

	var counts []driven.RegionCount
	for rows.Next() {
		var c driven.RegionCount
		if err := rows.Scan(&c.Region, &c.SourceCount); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
