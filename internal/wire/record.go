// Package wire holds raw indexing-API payloads and the alias-aware
// accessors the normalizer uses to read them.
package wire

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record is one decoded JSON object as returned by the indexing API.
// Field names differ between schema generations, so every accessor takes an
// ordered list of aliases and returns the first present, non-null value.
type Record map[string]json.RawMessage

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	raw, ok := r[key]
	return ok && !isNull(raw)
}

// Raw returns the first non-null raw value among aliases.
func (r Record) Raw(aliases ...string) (json.RawMessage, bool) {
	for _, k := range aliases {
		raw, ok := r[k]
		if !ok || isNull(raw) {
			continue
		}
		return raw, true
	}
	return nil, false
}

// String resolves a text field. Empty strings count as absent so that
// COALESCE(..., '') columns fall through to the next alias. Numbers are
// rendered in decimal, and arrays of strings are joined: on-chain metadata
// splits long text into 64-byte chunks.
func (r Record) String(aliases ...string) (string, bool) {
	for _, k := range aliases {
		raw, ok := r[k]
		if !ok || isNull(raw) {
			continue
		}
		if s, ok := asString(raw); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// StringOr is String with a default.
func (r Record) StringOr(def string, aliases ...string) string {
	if s, ok := r.String(aliases...); ok {
		return s
	}
	return def
}

// Int resolves an integer field. Accepts JSON numbers and numeric strings.
func (r Record) Int(aliases ...string) (int64, bool) {
	for _, k := range aliases {
		raw, ok := r[k]
		if !ok || isNull(raw) {
			continue
		}
		if n, ok := asInt(raw); ok {
			return n, true
		}
	}
	return 0, false
}

// IntOr is Int with a default.
func (r Record) IntOr(def int64, aliases ...string) int64 {
	if n, ok := r.Int(aliases...); ok {
		return n
	}
	return def
}

// IntPtr is Int returning nil when absent.
func (r Record) IntPtr(aliases ...string) *int64 {
	if n, ok := r.Int(aliases...); ok {
		return &n
	}
	return nil
}

// Time resolves a timestamp as Unix seconds. Accepts seconds (number or
// numeric string) and RFC3339 strings.
func (r Record) Time(aliases ...string) (int64, bool) {
	for _, k := range aliases {
		raw, ok := r[k]
		if !ok || isNull(raw) {
			continue
		}
		if n, ok := asInt(raw); ok {
			return n, true
		}
		if s, ok := asString(raw); ok {
			if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s)); err == nil {
				return t.Unix(), true
			}
		}
	}
	return 0, false
}

// TimePtr is Time returning nil when absent.
func (r Record) TimePtr(aliases ...string) *int64 {
	if n, ok := r.Time(aliases...); ok {
		return &n
	}
	return nil
}

// Object resolves a nested JSON object.
func (r Record) Object(aliases ...string) (Record, bool) {
	for _, k := range aliases {
		raw, ok := r[k]
		if !ok || !startsWith(raw, '{') {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err == nil {
			return rec, true
		}
	}
	return nil, false
}

// Array resolves a nested JSON array of objects. Non-object elements are
// skipped.
func (r Record) Array(aliases ...string) ([]Record, bool) {
	for _, k := range aliases {
		raw, ok := r[k]
		if !ok || !startsWith(raw, '[') {
			continue
		}
		items, err := decodeArray(raw)
		if err == nil {
			return items, true
		}
	}
	return nil, false
}

func asString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case '[':
		var parts []string
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return "", false
		}
		return strings.Join(parts, ""), true
	case '{', 'n':
		return "", false
	case 't', 'f':
		return string(trimmed), true
	default:
		var num json.Number
		if err := json.Unmarshal(trimmed, &num); err != nil {
			return "", false
		}
		return num.String(), true
	}
}

func asInt(raw json.RawMessage) (int64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, false
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n, err == nil
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return 0, false
	}
	if n, err := num.Int64(); err == nil {
		return n, true
	}
	// Aggregates computed with SUM() can come back as 12.0.
	f, err := num.Float64()
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func startsWith(raw json.RawMessage, c byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == c
}
