// Package history persists per-run failure identities in a local SQLite
// database so a later run can be diffed against the previous one. Only the
// CLI touches this store; the analysis pipeline itself performs no I/O.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/kamilpajak/mendeleev/internal/regression"
)

// Run is one stored analysis run.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
	TotalTests int       `json:"total_tests"`
	Failed     int       `json:"failed"`
}

// Store wraps the SQLite database holding run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	// WAL mode: the CLI may save while a dashboard poller reads.
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("history store opened")
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			total_tests INTEGER NOT NULL,
			failed INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS identities (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			fingerprint TEXT NOT NULL,
			root_cause TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_identities_run ON identities(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores a run and its failure identities, returning the stored run.
func (s *Store) SaveRun(ctx context.Context, source string, totalTests, failed int, identities []regression.Record) (Run, error) {
	run := Run{
		ID:         uuid.NewString(),
		Source:     source,
		CreatedAt:  time.Now().UTC(),
		TotalTests: totalTests,
		Failed:     failed,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at, total_tests, failed) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.CreatedAt.UnixNano(), run.TotalTests, run.Failed)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}
	for _, id := range identities {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO identities (run_id, fingerprint, root_cause) VALUES (?, ?, ?)`,
			run.ID, id.Fingerprint, id.RootCause)
		if err != nil {
			return Run{}, fmt.Errorf("failed to insert identity: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("failed to commit run: %w", err)
	}

	log.Debug().Str("run", run.ID).Int("identities", len(identities)).Msg("run saved")
	return run, nil
}

// LatestRun returns the most recently stored run, or nil when the store is
// empty.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, created_at, total_tests, failed FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}
	return &run, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, created_at, total_tests, failed FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Identities returns the failure identities stored for a run.
func (s *Store) Identities(ctx context.Context, runID string) ([]regression.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fingerprint, root_cause FROM identities WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load identities: %w", err)
	}
	defer rows.Close()

	var identities []regression.Record
	for rows.Next() {
		var rec regression.Record
		if err := rows.Scan(&rec.Fingerprint, &rec.RootCause); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		identities = append(identities, rec)
	}
	return identities, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt int64
	if err := row.Scan(&run.ID, &run.Source, &createdAt, &run.TotalTests, &run.Failed); err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.Unix(0, createdAt).UTC()
	return run, nil
}
