package incremental

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"repoatlas/internal/errors"
	"repoatlas/internal/logging"
)

// SQLiteStore persists states in a SQLite database, one row per repository
// key with a JSON payload column. Suits callers tracking many repositories
// from one process.
type SQLiteStore struct {
	db     *sql.DB
	logger *logging.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS analysis_state (
	repo_key   TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// OpenSQLiteStore opens or creates the state database at dbPath.
func OpenSQLiteStore(dbPath string, logger *logging.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to open state database", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.New(errors.StoreUnavailable, "failed to initialize state schema", err)
	}
	return &SQLiteStore{db: db, logger: logging.OrDiscard(logger)}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the stored state. Missing rows, corrupt payloads, and
// version-incompatible states all return (nil, nil).
func (s *SQLiteStore) Load(ctx context.Context, repoKey string) (*State, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT version, payload FROM analysis_state WHERE repo_key = ?
	`, repoKey)

	var version int
	var payload string
	err := row.Scan(&version, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to query state", err)
	}

	if version != StateVersion {
		s.logger.Info("state version mismatch, treating as absent", map[string]interface{}{
			"repoKey": repoKey,
			"stored":  version,
			"current": StateVersion,
		})
		return nil, nil
	}

	var state State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		s.logger.Warn("state payload corrupt, treating as absent", map[string]interface{}{
			"repoKey": repoKey,
			"error":   err.Error(),
		})
		return nil, nil
	}
	if state.Version != StateVersion {
		return nil, nil
	}

	return &state, nil
}

// Save upserts the state row. Last writer wins.
func (s *SQLiteStore) Save(ctx context.Context, repoKey string, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return errors.New(errors.InternalError, "failed to marshal state", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analysis_state (repo_key, version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(repo_key) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, repoKey, state.Version, string(payload), time.Now().Unix())
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to persist state", err)
	}
	return nil
}
