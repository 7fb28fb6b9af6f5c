package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Document is a JSON sub-document the store carries without interpreting,
// such as sprite URL trees. It is kept in compact form so that two decodes
// of the same content compare equal regardless of indentation.
type Document []byte

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = nil
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*d = buf.Bytes()
	return nil
}

// Equal compares documents byte for byte.
func (d Document) Equal(o Document) bool {
	return bytes.Equal(d, o)
}
