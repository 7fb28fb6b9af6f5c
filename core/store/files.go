package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dex-wiki/core/models"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const recordExt = ".json"

// dir returns the directory holding records of kind, optionally within a
// creature subfolder.
func (s *Store) dir(kind models.Kind, subfolder string) string {
	if subfolder == "" {
		return filepath.Join(s.DataDir(), string(kind))
	}
	return filepath.Join(s.DataDir(), string(kind), subfolder)
}

// resolveFile finds the file for id in dir: <id>.json if present, otherwise
// the lexicographically first <id>-*.json. fallback reports the second case.
func resolveFile(dir, id string) (path string, fallback bool, err error) {
	exact := filepath.Join(dir, id+recordExt)
	if info, statErr := os.Stat(exact); statErr == nil && info.Mode().IsRegular() {
		return exact, false, nil
	}

	// ReadDir returns entries sorted by name.
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("%w: %s", ErrNotFound, exact)
		}
		return "", false, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	prefix := id + "-"
	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, recordExt) {
			return filepath.Join(dir, name), true, nil
		}
	}
	return "", false, fmt.Errorf("%w: %s", ErrNotFound, exact)
}

// readRecord resolves, reads and decodes the file behind key.
func (s *Store) readRecord(key cacheKey) (models.Record, error) {
	path, fallback, err := resolveFile(s.dir(key.Kind, key.Subfolder), key.ID)
	if err != nil {
		return nil, err
	}
	if fallback {
		s.logger.Info("Resolved record through suffixed file",
			zap.Stringer("key", key),
			zap.String("file", filepath.Base(path)),
		)
	}
	return s.readFile(key.Kind, path)
}

func (s *Store) readFile(kind models.Kind, path string) (models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	s.diskReads.Add(1)
	s.metrics.diskRead()

	rec, err := decodeRecord(kind, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// decodeRecord parses and validates one record file.
func decodeRecord(kind models.Kind, data []byte) (models.Record, error) {
	rec, err := models.New(kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return rec, nil
}

// Encode renders rec in the canonical form Save writes: indented JSON with
// sorted keys and a trailing newline, so saving the same value twice produces
// identical files.
func Encode(rec models.Record) ([]byte, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	// Round-trip through a generic value so object keys come out sorted.
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// listRecordFiles returns the record file names in dir, sorted.
func listRecordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), recordExt) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

