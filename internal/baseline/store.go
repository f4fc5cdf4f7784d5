// Package baseline persists run summaries in SQLite so later runs can
// compare against them by name.
package baseline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/louisbranch/wordlebench/internal/baseline/migrations"
	"github.com/louisbranch/wordlebench/internal/harness"
	"github.com/louisbranch/wordlebench/internal/perf"
	"github.com/louisbranch/wordlebench/internal/platform/storage/sqlitemigrate"
)

var (
	// ErrNotFound indicates no baseline exists under the requested name.
	ErrNotFound = errors.New("baseline does not exist")

	// ErrAlreadyExists indicates a save would clobber an existing baseline
	// without overwrite set.
	ErrAlreadyExists = errors.New("baseline already exists")
)

// DefaultPath returns the database path from WORDLEBENCH_DATA_DIR, falling
// back to a .wordlebench directory under the working directory.
func DefaultPath() string {
	dir := strings.TrimSpace(os.Getenv("WORDLEBENCH_DATA_DIR"))
	if dir == "" {
		dir = ".wordlebench"
	}
	return filepath.Join(dir, "baselines.db")
}

// Store persists baseline summaries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite baseline store and applies embedded migrations. The
// parent directory is created when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveSummary stores a summary under name. Without overwrite, saving over
// an existing name returns ErrAlreadyExists.
func (s *Store) SaveSummary(ctx context.Context, name string, summary perf.Summary, overwrite bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("baseline name is required")
	}

	query := `INSERT INTO baselines (
	   name, strategy, tried, solved, cumulative_guesses,
	   solved_in_1, solved_in_2, solved_in_3, solved_in_4, solved_in_5, solved_in_6,
	   saved_at
	 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if overwrite {
		query += ` ON CONFLICT(name) DO UPDATE SET
		   strategy = excluded.strategy,
		   tried = excluded.tried,
		   solved = excluded.solved,
		   cumulative_guesses = excluded.cumulative_guesses,
		   solved_in_1 = excluded.solved_in_1,
		   solved_in_2 = excluded.solved_in_2,
		   solved_in_3 = excluded.solved_in_3,
		   solved_in_4 = excluded.solved_in_4,
		   solved_in_5 = excluded.solved_in_5,
		   solved_in_6 = excluded.solved_in_6,
		   saved_at = excluded.saved_at`
	}

	h := summary.Histogram
	_, err := s.sqlDB.ExecContext(ctx, query,
		name, summary.Strategy, summary.Tried, summary.Solved, summary.CumulativeGuesses,
		h[0], h[1], h[2], h[3], h[4], h[5],
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("baseline %q: %w", name, ErrAlreadyExists)
		}
		return fmt.Errorf("save baseline %q: %w", name, err)
	}
	return nil
}

// LoadSummary reads the summary stored under name.
func (s *Store) LoadSummary(ctx context.Context, name string) (perf.Summary, error) {
	if err := ctx.Err(); err != nil {
		return perf.Summary{}, err
	}
	if s == nil || s.sqlDB == nil {
		return perf.Summary{}, fmt.Errorf("storage is not configured")
	}

	var summary perf.Summary
	h := &summary.Histogram
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT strategy, tried, solved, cumulative_guesses,
		   solved_in_1, solved_in_2, solved_in_3, solved_in_4, solved_in_5, solved_in_6
		 FROM baselines WHERE name = ?`, strings.TrimSpace(name),
	).Scan(&summary.Strategy, &summary.Tried, &summary.Solved, &summary.CumulativeGuesses,
		&h[0], &h[1], &h[2], &h[3], &h[4], &h[5])
	if errors.Is(err, sql.ErrNoRows) {
		return perf.Summary{}, fmt.Errorf("baseline %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return perf.Summary{}, fmt.Errorf("load baseline %q: %w", name, err)
	}
	return summary, nil
}

// ListNames returns every stored baseline name, sorted.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM baselines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan baseline name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}
	return names, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ harness.SummaryStore = (*Store)(nil)
