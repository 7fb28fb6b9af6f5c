package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Change is one audit log entry describing a field edit.
type Change struct {
	Field     string `json:"field"`
	OldValue  string `json:"old_value"`
	NewValue  string `json:"new_value"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// ChangeLog is the append/update-only audit trail carried by every record.
type ChangeLog []Change

// now is swapped in tests.
var now = time.Now

// Record notes that field went from oldValue to newValue. An existing entry
// for the same field and original value is updated in place, so repeated
// edits keep pointing at the first known value. Nothing is recorded when the
// values are equal. It reports whether the log changed.
func (l *ChangeLog) Record(field string, oldValue, newValue any, source string) bool {
	oldStr := fmt.Sprint(oldValue)
	newStr := fmt.Sprint(newValue)
	if oldStr == newStr {
		return false
	}

	ts := now().UTC().Format(time.RFC3339)
	for i := range *l {
		c := &(*l)[i]
		if c.Field == field && c.OldValue == oldStr {
			c.NewValue = newStr
			c.Timestamp = ts
			c.Source = source
			return true
		}
	}

	*l = append(*l, Change{
		Field:     field,
		OldValue:  oldStr,
		NewValue:  newStr,
		Timestamp: ts,
		Source:    source,
	})
	return true
}

// Clear empties the log. It is the only operation that drops entries.
func (l *ChangeLog) Clear() {
	*l = ChangeLog{}
}

// Len returns the number of entries.
func (l ChangeLog) Len() int {
	return len(l)
}

// MarshalJSON writes an empty log as [] rather than null.
func (l ChangeLog) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Change(l))
}
