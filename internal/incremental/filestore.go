package incremental

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"repoatlas/internal/errors"
	"repoatlas/internal/logging"
)

// FileStore persists states as zstd-compressed JSON files under a state
// directory, one file per repository key.
type FileStore struct {
	dir    string
	logger *logging.Logger
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created on first save.
func NewFileStore(dir string, logger *logging.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logging.OrDiscard(logger)}
}

// Load reads and decompresses the stored state. Missing, unreadable, or
// version-incompatible payloads all come back as (nil, nil): the caller
// falls back to a cold start.
func (f *FileStore) Load(_ context.Context, repoKey string) (*State, error) {
	data, err := os.ReadFile(f.statePath(repoKey))
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("state file unreadable, treating as absent", map[string]interface{}{
				"repoKey": repoKey,
				"error":   err.Error(),
			})
		}
		return nil, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to initialize decompressor", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		f.logger.Warn("state payload corrupt, treating as absent", map[string]interface{}{
			"repoKey": repoKey,
			"error":   err.Error(),
		})
		return nil, nil
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		f.logger.Warn("state JSON corrupt, treating as absent", map[string]interface{}{
			"repoKey": repoKey,
			"error":   err.Error(),
		})
		return nil, nil
	}

	if state.Version != StateVersion {
		f.logger.Info("state version mismatch, treating as absent", map[string]interface{}{
			"repoKey": repoKey,
			"stored":  state.Version,
			"current": StateVersion,
		})
		return nil, nil
	}

	return &state, nil
}

// Save serializes, compresses, and atomically replaces the state file.
func (f *FileStore) Save(_ context.Context, repoKey string, state *State) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return errors.New(errors.StoreUnavailable, "failed to create state directory", err)
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return errors.New(errors.InternalError, "failed to marshal state", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to initialize compressor", err)
	}
	compressed := enc.EncodeAll(raw, nil)
	if err := enc.Close(); err != nil {
		return errors.New(errors.StoreUnavailable, "failed to finalize compressor", err)
	}

	path := f.statePath(repoKey)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0644); err != nil {
		return errors.New(errors.StoreUnavailable, "failed to write state file", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.New(errors.StoreUnavailable, "failed to replace state file", err)
	}
	return nil
}

// statePath maps a repository key to a filesystem-safe filename.
func (f *FileStore) statePath(repoKey string) string {
	sum := sha256.Sum256([]byte(repoKey))
	return filepath.Join(f.dir, fmt.Sprintf("state-%s.json.zst", hex.EncodeToString(sum[:8])))
}
