package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are the input layouts accepted for date-like fields.
// Output is always canonical RFC3339 (nanosecond precision) in UTC, so
// serializing never loses an instant.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02",
}

// Timestamp is a time.Time that accepts either a full RFC3339 timestamp
// or a plain calendar date on input.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t as a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses s using the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON renders the canonical RFC3339 form.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts an RFC3339 timestamp, a plain date, or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	s, err := unquote(data)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Equal reports whether two timestamps denote the same instant.
func (t Timestamp) Equal(other Timestamp) bool {
	return t.Time.Equal(other.Time)
}
