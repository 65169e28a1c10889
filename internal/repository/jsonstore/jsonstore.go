// Package jsonstore provides collection-level persistence for one entity
// kind: a named, pretty-printed JSON file holding the whole collection.
// Reads degrade to an empty collection rather than failing, keeping the
// application usable over a missing or damaged store at the cost of silent
// data loss; writes replace the whole file atomically.
package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"autofacil/internal/logger"
)

// Store persists one entity collection in <dir>/<name>.
type Store[T any] struct {
	dir  string
	name string
}

// New creates a store for the named file under dir, creating the directory
// when missing. Directory creation failure is logged; the store stays usable
// and Save will report the failure.
func New[T any](dir, name string) *Store[T] {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("Failed to create data directory", "dir", dir, "error", err)
	}
	return &Store[T]{dir: dir, name: name}
}

func (s *Store[T]) path() string {
	return filepath.Join(s.dir, s.name)
}

// Load reads the whole collection. A missing, empty or unparseable store
// yields an empty slice; the condition is logged, never raised.
func (s *Store[T]) Load() []T {
	logger.StoreCall("load", s.name)

	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Store file not found, starting empty", "file", s.name)
		} else {
			logger.Error("Failed to read store file", "file", s.name, "error", err)
		}
		return []T{}
	}
	if len(data) == 0 {
		logger.Info("Store file empty", "file", s.name)
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Error("Malformed store file, starting empty", "file", s.name, "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}

	logger.StoreResult("load", s.name, nil, "count", len(items))
	return items
}

// Save serializes the entire collection and replaces the store file.
// The write goes to a temp file in the same directory and is renamed over
// the target, so readers never observe a half-written store. Returns false
// on any I/O failure.
func (s *Store[T]) Save(items []T) bool {
	logger.StoreCall("save", s.name, "count", len(items))

	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		logger.StoreResult("save", s.name, err)
		return false
	}
	if err := writeFileAtomic(s.path(), data); err != nil {
		logger.StoreResult("save", s.name, err)
		return false
	}

	logger.StoreResult("save", s.name, nil)
	return true
}

// Exists reports whether the store file exists and is non-empty.
func (s *Store[T]) Exists() bool {
	info, err := os.Stat(s.path())
	return err == nil && info.Size() > 0
}

// Backup copies the current store to a sibling *_backup file. Best-effort:
// failures are logged, not raised.
func (s *Store[T]) Backup() {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read store for backup", "file", s.name, "error", err)
		}
		return
	}

	backupName := backupFileName(s.name)
	if err := writeFileAtomic(filepath.Join(s.dir, backupName), data); err != nil {
		logger.Error("Failed to write backup", "file", backupName, "error", err)
		return
	}
	logger.Info("Backup created", "file", backupName)
}

func backupFileName(name string) string {
	if ext := filepath.Ext(name); ext != "" {
		return strings.TrimSuffix(name, ext) + "_backup" + ext
	}
	return name + "_backup"
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
