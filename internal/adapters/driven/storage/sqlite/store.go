package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/chatvault/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
)

// Ensure JournalStore implements the interface.
var _ driven.JournalStore = (*JournalStore)(nil)

// dbFile is the journal database file name.
const dbFile = "journal.db"

// JournalStore is a SQLite-based implementation of driven.JournalStore.
type JournalStore struct {
	db   *sql.DB
	path string
}

// NewJournalStore opens (or creates) the journal in dataDir.
// If dataDir is empty, defaults to ~/.chatvault/data/journal.db.
func NewJournalStore(dataDir string) (*JournalStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".chatvault", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &JournalStore{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *JournalStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *JournalStore) Path() string {
	return s.path
}

// Record appends an entry, registering its run on first use.
func (s *JournalStore) Record(ctx context.Context, entry domain.JournalEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("%w: journal entry without run id", domain.ErrInvalidInput)
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO runs (id, started_at) VALUES (?, ?)`,
		entry.RunID, entry.RecordedAt.UTC(),
	); err != nil {
		return fmt.Errorf("registering run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO journal_entries
			(run_id, conversation_id, path, relocated_from, action, detail, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.RunID,
		entry.ConversationID,
		entry.Path,
		entry.RelocatedFrom,
		string(entry.Action),
		entry.Detail,
		entry.RecordedAt.UTC(),
	); err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}

	return tx.Commit()
}

// ListRun returns the entries of a run in recording order.
// Returns domain.ErrNotFound when the run is unknown.
func (s *JournalStore) ListRun(ctx context.Context, runID string) ([]domain.JournalEntry, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs WHERE id = ?`, runID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, conversation_id, path, relocated_from, action, detail, recorded_at
		FROM journal_entries
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var (
			e      domain.JournalEntry
			action string
		)
		if err := rows.Scan(
			&e.RunID, &e.ConversationID, &e.Path, &e.RelocatedFrom, &action, &e.Detail, &e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		e.Action = domain.SyncAction(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// migrate runs all pending migrations and records their versions.
func (s *JournalStore) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
