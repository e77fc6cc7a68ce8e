package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cuemix/internal/assembly"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; old ledgers must be deleted after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// ErrRunNotFound reports a run id absent from the ledger.
var ErrRunNotFound = errors.New("run not found")

// Run is one row of the ledger as shown in listings.
type Run struct {
	RunID         string
	TemplateID    string
	TemplateName  string
	CreatedAt     time.Time
	DurationMs    int64
	Channels      int
	CompositeFile string
	Stems         int
	Skipped       int
}

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Record implements assembly.Recorder: it appends a completed run to the
// ledger.
func (s *Store) Record(ctx context.Context, md *assembly.Metadata) error {
	blob, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("encode run metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assembly_runs (
            run_id, template_id, template_name, created_at,
            duration_ms, channels, composite_file, stems, skipped, metadata
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		md.RunID,
		md.TemplateID,
		md.TemplateName,
		md.CreatedAt.UTC().Format(time.RFC3339Nano),
		md.DurationMs,
		len(md.ChannelLayout),
		md.CompositeFile,
		len(md.Stems),
		len(md.Skipped),
		string(blob),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. A limit <= 0 returns
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT run_id, template_id, template_name, created_at,
            duration_ms, channels, composite_file, stems, skipped
        FROM assembly_runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(
			&run.RunID, &run.TemplateID, &run.TemplateName, &createdAt,
			&run.DurationMs, &run.Channels, &run.CompositeFile, &run.Stems, &run.Skipped,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = ts
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// Get returns the full metadata record for one run.
func (s *Store) Get(ctx context.Context, runID string) (*assembly.Metadata, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		"SELECT metadata FROM assembly_runs WHERE run_id = ?", runID,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	var md assembly.Metadata
	if err := json.Unmarshal([]byte(blob), &md); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return &md, nil
}
