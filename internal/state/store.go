// Package state persists the export checkpoint: the millisecond timestamp
// of the most recently exported trade.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// stateFile is the on-disk shape of the checkpoint.
type stateFile struct {
	LastTime int64 `json:"last_time"`
}

// Store reads and writes the checkpoint file. The store itself is a dumb
// cell; monotonicity is enforced by the caller, which never saves a value
// lower than the one it loaded. Single-writer access is assumed — the file
// is not lock-protected.
type Store struct {
	path     string
	fallback int64 // used when no checkpoint file exists yet
	logger   *slog.Logger
}

// NewStore creates a checkpoint store at path. fallback is the starting
// point returned by Load when no checkpoint has been written yet (0 means
// export all history).
func NewStore(path string, fallback int64, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, fallback: fallback, logger: logger}
}

// Load returns the persisted checkpoint, or the fallback when the file does
// not exist. Any other read or parse failure is a persistence error and is
// returned to the caller: silently restarting from the fallback would
// re-export already-written trades.
func (s *Store) Load() (int64, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Info("no checkpoint file, using fallback start",
			"path", s.path,
			"fallback_ms", s.fallback,
		)
		return s.fallback, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read checkpoint file: %w", err)
	}

	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parse checkpoint file %s: %w", s.path, err)
	}

	return file.LastTime, nil
}

// Save persists the checkpoint, replacing any prior value. The write goes
// through a temp file and rename so a crash mid-write cannot leave a
// truncated checkpoint behind. Call only after the run's output has been
// durably written.
func (s *Store) Save(ts int64) error {
	data, err := json.Marshal(stateFile{LastTime: ts})
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp checkpoint file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp checkpoint file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp checkpoint file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace checkpoint file: %w", err)
	}

	s.logger.Debug("checkpoint saved", "path", s.path, "last_time_ms", ts)
	return nil
}
