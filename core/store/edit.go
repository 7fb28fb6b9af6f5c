package store

import (
	"bytes"
	"errors"
	"fmt"

	"dex-wiki/core/models"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ErrUnknownField means an edit named a field the record does not have.
var ErrUnknownField = errors.New("unknown field")

const changesField = "changes"

// SetField replaces one top-level field of a stored record with value, a JSON
// document, notes the edit in the record's change log under source and saves
// the result. The edited record must still pass validation. Nothing is written
// when the new value equals the current one; changed reports which happened.
func (s *Store) SetField(kind models.Kind, id, subfolder, field string, value []byte, source string) (rec models.Record, changed bool, err error) {
	current, ok := s.Load(kind, id, subfolder)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
	}
	if field == changesField {
		return nil, false, fmt.Errorf("the %s field is maintained by edits and cannot be set", changesField)
	}

	newValue, err := compactJSON(value)
	if err != nil {
		return nil, false, fmt.Errorf("value for %s is not valid JSON: %w", field, err)
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode %s %q: %w", kind, id, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s %q: %w", kind, id, err)
	}
	oldRaw, ok := fields[field]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, kind, field)
	}
	oldValue, err := compactJSON(oldRaw)
	if err != nil {
		return nil, false, err
	}

	fields[field] = newValue
	patched, err := json.Marshal(fields)
	if err != nil {
		return nil, false, err
	}
	updated, err := decodeRecord(kind, patched)
	if err != nil {
		return nil, false, fmt.Errorf("invalid value for %s: %w", field, err)
	}

	if !updated.ChangeLog().Record(field, displayValue(oldValue), displayValue(newValue), source) {
		return current, false, nil
	}
	if _, err := s.Save(kind, id, updated, subfolder); err != nil {
		return nil, false, err
	}

	s.logger.Info("Updated record field",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.String("field", field),
		zap.String("source", source),
	)
	return updated, true, nil
}

func compactJSON(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// displayValue renders a JSON value for the change log, with strings
// unquoted.
func displayValue(raw []byte) string {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
