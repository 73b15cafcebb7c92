package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rdkhare/CourtFinder/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.UserStore = (*Store)(nil)

const dbFileName = "courtfinder.db"

// Store keeps user documents in a local SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.courtfinder/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".courtfinder", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{
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
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(fsys embed.FS) error {
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

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== User Store ====================

// Get returns the user's document or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, userID string) (*domain.UserDocument, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getting user: %v", domain.ErrNetworkFailure, err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT field, value FROM user_fields WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting user fields: %v", domain.ErrNetworkFailure, err)
	}
	defer rows.Close()

	doc := &domain.UserDocument{
		UserID: userID,
		Fields: make(map[string]json.RawMessage),
	}
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("scanning user field: %w", err)
		}
		doc.Fields[field] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user fields: %v", domain.ErrNetworkFailure, err)
	}

	return doc, nil
}

// UpdateFavorites replaces favourites on an existing document.
func (s *Store) UpdateFavorites(ctx context.Context, userID string, favorites json.RawMessage) error {
	return s.writeField(ctx, userID, domain.FavoritesField, favorites, false)
}

// MergeFavorites writes favourites, creating the document if needed.
func (s *Store) MergeFavorites(ctx context.Context, userID string, favorites json.RawMessage) error {
	return s.writeField(ctx, userID, domain.FavoritesField, favorites, true)
}

// SetProfileField writes one profile field, creating the document if needed.
func (s *Store) SetProfileField(ctx context.Context, userID, field string, value json.RawMessage) error {
	if err := domain.ValidateProfileField(field); err != nil {
		return err
	}
	return s.writeField(ctx, userID, field, value, true)
}

func (s *Store) writeField(ctx context.Context, userID, field string, value json.RawMessage, create bool) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: %s is not valid JSON", domain.ErrInvalidInput, field)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", domain.ErrNetworkFailure, err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()

	if create {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, created_at, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
		`, userID, now, now)
	} else {
		var res sql.Result
		res, err = tx.ExecContext(ctx, "UPDATE users SET updated_at = ? WHERE id = ?", now, userID)
		if err == nil {
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("%w: writing user: %v", domain.ErrNetworkFailure, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_fields (user_id, field, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, field) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, userID, field, string(value), now)
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrNetworkFailure, field, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing %s: %v", domain.ErrNetworkFailure, field, err)
	}
	return nil
}
