package model

import "time"

// Draft defaulting helpers. Pointer fields are copied so a record never
// aliases memory owned by the caller's draft.

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func timestampOr(p *Timestamp, now time.Time) Timestamp {
	if p == nil {
		return NewTimestamp(now)
	}
	return *p
}

// cloneTags copies the tag sequence, preserving order. A record always
// holds a non-nil slice so tags serialize as an explicit empty list.
func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
