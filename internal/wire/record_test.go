package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustObject(t *testing.T, body string) Record {
	t.Helper()
	rec, err := DecodeObject([]byte(body))
	require.NoError(t, err)
	return rec
}

func TestRecord_StringFallbackOrder(t *testing.T) {
	rec := mustObject(t, `{"label": "Label", "project_name": "Name", "identifier": "EC-0001"}`)

	got, ok := rec.String("project_name", "label", "identifier")
	if !ok || got != "Name" {
		t.Errorf("expected Name, got %q (ok=%v)", got, ok)
	}

	got, ok = rec.String("missing", "label")
	if !ok || got != "Label" {
		t.Errorf("expected Label, got %q (ok=%v)", got, ok)
	}
}

func TestRecord_StringSkipsNullAndEmpty(t *testing.T) {
	rec := mustObject(t, `{"project_name": "", "label": null, "identifier": "EC-0002"}`)

	got, ok := rec.String("project_name", "label", "identifier")
	if !ok || got != "EC-0002" {
		t.Errorf("expected EC-0002, got %q (ok=%v)", got, ok)
	}

	if _, ok := rec.String("project_name", "label"); ok {
		t.Error("expected no value when every alias is empty or null")
	}
}

func TestRecord_StringCoercions(t *testing.T) {
	rec := mustObject(t, `{"project_id": 42, "label": ["Treasury ", "tooling ", "2025"], "flag": true}`)

	if got := rec.StringOr("", "project_id"); got != "42" {
		t.Errorf("numeric id: expected 42, got %q", got)
	}
	if got := rec.StringOr("", "label"); got != "Treasury tooling 2025" {
		t.Errorf("chunked label: got %q", got)
	}
	if got := rec.StringOr("", "flag"); got != "true" {
		t.Errorf("bool: got %q", got)
	}
}

func TestRecord_Int(t *testing.T) {
	rec := mustObject(t, `{"a": 7, "b": "12", "c": 3.0, "d": 2.5, "e": "x", "f": {"k": 1}}`)

	tests := []struct {
		key  string
		want int64
		ok   bool
	}{
		{"a", 7, true},
		{"b", 12, true},
		{"c", 3, true},
		{"d", 0, false},
		{"e", 0, false},
		{"f", 0, false},
		{"missing", 0, false},
	}

	for _, tt := range tests {
		got, ok := rec.Int(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Int(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}

	if got := rec.IntOr(-1, "missing", "a"); got != 7 {
		t.Errorf("IntOr fallback: got %d", got)
	}
	if rec.IntPtr("missing") != nil {
		t.Error("IntPtr on missing key should be nil")
	}
}

func TestRecord_Time(t *testing.T) {
	rec := mustObject(t, `{"unix": 1700000000, "str": "1700000001", "rfc": "2023-11-14T22:13:20Z", "bad": "yesterday"}`)

	if got, _ := rec.Time("unix"); got != 1700000000 {
		t.Errorf("unix: got %d", got)
	}
	if got, _ := rec.Time("str"); got != 1700000001 {
		t.Errorf("numeric string: got %d", got)
	}
	if got, _ := rec.Time("rfc"); got != 1700000000 {
		t.Errorf("rfc3339: got %d", got)
	}
	if _, ok := rec.Time("bad"); ok {
		t.Error("unparseable time should be absent")
	}
	if rec.TimePtr("bad", "unix") == nil {
		t.Error("TimePtr should fall through to the next alias")
	}
}

func TestRecord_ObjectAndArray(t *testing.T) {
	rec := mustObject(t, `{"project": {"project_id": "P1"}, "milestones": [{"label": "M1"}, 5, {"label": "M2"}], "scalar": 1}`)

	project, ok := rec.Object("project")
	require.True(t, ok)
	if project.StringOr("", "project_id") != "P1" {
		t.Errorf("nested object: got %v", project)
	}

	items, ok := rec.Array("milestones")
	require.True(t, ok)
	if len(items) != 2 {
		t.Fatalf("expected 2 object items, got %d", len(items))
	}

	if _, ok := rec.Object("scalar"); ok {
		t.Error("scalar is not an object")
	}
	if _, ok := rec.Array("project"); ok {
		t.Error("object is not an array")
	}
}

func TestDecodeCollection(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		keys    []string
		want    int
		wantErr bool
	}{
		{"bare array", `[{"a":1},{"a":2}]`, nil, 2, false},
		{"envelope", `{"projects":[{"a":1}]}`, []string{"projects"}, 1, false},
		{"envelope null", `{"projects":null}`, []string{"projects"}, 0, false},
		{"null body", `null`, nil, 0, false},
		{"empty body", ``, nil, 0, false},
		{"object without envelope", `{"error":"boom"}`, []string{"projects"}, 0, true},
		{"scalar", `42`, nil, 0, true},
		{"truncated", `[{"a":1}`, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCollection([]byte(tt.body), tt.keys...)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("expected ErrMalformed, got %v", err)
				}
				return
			}
			require.NoError(t, err)
			if len(got) != tt.want {
				t.Errorf("expected %d records, got %d", tt.want, len(got))
			}
		})
	}
}

func TestDecodeOneOrMany(t *testing.T) {
	got, err := DecodeOneOrMany([]byte(`{"instance_id": 1, "script_hash": "abc"}`), "treasuries")
	require.NoError(t, err)
	if len(got) != 1 {
		t.Fatalf("expected single object to become one record, got %d", len(got))
	}
}

func TestDecodeObject(t *testing.T) {
	rec, err := DecodeObject([]byte(`null`))
	require.NoError(t, err)
	if rec != nil {
		t.Errorf("expected nil record for null body, got %v", rec)
	}

	if _, err := DecodeObject([]byte(`[1,2]`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for array, got %v", err)
	}
	if _, err := DecodeObject([]byte(`<html>`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for html, got %v", err)
	}
}
