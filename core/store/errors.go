package store

import (
	"errors"
	"fmt"

	"dex-wiki/core/models"
)

var (
	// ErrNotFound means no file exists for the requested record.
	ErrNotFound = errors.New("record not found")
	// ErrMalformed means the file exists but could not be decoded or failed
	// validation.
	ErrMalformed = errors.New("malformed record")
)

// TypeMismatchError reports a cache slot or save request whose record kind
// disagrees with the key it belongs to. Load panics with it; it signals a
// cache key collision or a decoding regression, never bad input data.
type TypeMismatchError struct {
	Kind models.Kind
	ID   string
	Got  models.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for %s %q: holds a %s record", e.Kind, e.ID, e.Got)
}
