package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dex-wiki/core/models"
	"dex-wiki/core/slug"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// Save writes rec to disk and makes it the cached value for its key. The file
// is written to a temporary sibling and renamed into place, so readers never
// see a partial file. Creature saves without a subfolder go to the creature's
// last known subfolder, or "default". It returns the written path.
func (s *Store) Save(kind models.Kind, id string, rec models.Record, subfolder string) (string, error) {
	if rec == nil {
		return "", errors.New("cannot save a nil record")
	}
	id = slug.Normalize(id)
	if id == "" {
		return "", errors.New("cannot save a record with an empty id")
	}
	if rec.Kind() != kind {
		return "", &TypeMismatchError{Kind: kind, ID: id, Got: rec.Kind()}
	}

	if kind == models.KindCreature {
		if subfolder == "" {
			s.lock.WithRead(func() {
				subfolder = s.subfolders[id]
			})
		}
		if subfolder == "" {
			subfolder = models.SubfolderDefault
		}
	} else {
		subfolder = ""
	}

	data, err := Encode(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s %q: %w", kind, id, err)
	}

	dir := s.dir(kind, subfolder)
	path := filepath.Join(dir, id+recordExt)
	if err := s.writeFile(dir, path, data); err != nil {
		s.logger.Error("Failed to save record", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to write record %s: %w", path, err)
	}

	s.put(cacheKey{Kind: kind, ID: id, Subfolder: subfolder}, rec)
	s.logger.Debug("Saved record", zap.String("path", path))
	return path, nil
}

// writeFile atomically replaces path with data. New files get filePerms;
// existing files keep their mode.
func (s *Store) writeFile(dir, path string, data []byte) error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	if isNew {
		if err := os.Chmod(path, filePerms); err != nil {
			return fmt.Errorf("failed to set file permissions: %w", err)
		}
	}
	return nil
}
