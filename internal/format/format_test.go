package format

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestFormatter() *Formatter {
	return New(Options{
		Location: time.UTC,
		Now:      func() time.Time { return time.Unix(1700003600, 0) },
	})
}

func TestTruncate_IdentityWhenShort(t *testing.T) {
	for _, s := range []string{"", "a", "abcd1234", "abcd1234ef567890"} {
		if got := Truncate(s, 8); got != s {
			t.Errorf("Truncate(%q, 8) = %q, want identity", s, got)
		}
	}
}

func TestTruncate_Shape(t *testing.T) {
	hash := "abcd1234" + strings.Repeat("0", 24) + "9876ef01"
	if len(hash) != 40 {
		t.Fatalf("fixture should be 40 chars, got %d", len(hash))
	}

	got := Truncate(hash, 8)
	if got != "abcd1234...9876ef01" {
		t.Errorf("got %q", got)
	}

	for n := 0; n <= 20; n++ {
		for length := 0; length <= 50; length++ {
			s := strings.Repeat("x", length)
			out := Truncate(s, n)
			if length <= 2*n {
				if out != s {
					t.Fatalf("n=%d len=%d: expected identity", n, length)
				}
				continue
			}
			if len(out) != 2*n+3 {
				t.Fatalf("n=%d len=%d: expected length %d, got %d", n, length, 2*n+3, len(out))
			}
			if strings.Count(out, "...") != 1 {
				t.Fatalf("n=%d len=%d: expected exactly one ellipsis in %q", n, length, out)
			}
		}
	}
}

func TestTruncate_NegativeAndRunes(t *testing.T) {
	if got := Truncate("abc", -3); got != "..." {
		t.Errorf("negative n: got %q", got)
	}
	if got := Truncate("", -1); got != "" {
		t.Errorf("empty string with negative n: got %q", got)
	}
	if got := Truncate("ααββγγ", 2); got != "αα...γγ" {
		t.Errorf("runes: got %q", got)
	}
	if got := TruncatePtr(nil, 8); got != Placeholder {
		t.Errorf("nil: got %q", got)
	}
}

func TestFormatter_Ada(t *testing.T) {
	f := newTestFormatter()

	tests := []struct {
		name     string
		lovelace *int64
		want     string
	}{
		{"nil", nil, "0.00"},
		{"zero", ptr(int64(0)), "0.00"},
		{"one lovelace", ptr(int64(1)), "0.000001"},
		{"whole ada", ptr(int64(5_000_000)), "5.00"},
		{"trailing zeros trimmed", ptr(int64(1_500_000)), "1.50"},
		{"three digits", ptr(int64(1_234_500)), "1.2345"},
		{"grouping", ptr(int64(1_234_567_890_000)), "1,234,567.89"},
		{"max int64", ptr(int64(math.MaxInt64)), "9,223,372,036,854.775807"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Ada(tt.lovelace); got != tt.want {
				t.Errorf("Ada() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatter_AdaLocale(t *testing.T) {
	f := New(Options{Locale: "de-DE", Location: time.UTC})
	got := f.Lovelace(1_234_567_890_000)
	if !strings.HasSuffix(got, ",89") {
		t.Errorf("expected comma decimal separator for de-DE, got %q", got)
	}

	fallback := New(Options{Locale: "not a locale!!"})
	if got := fallback.Lovelace(1_500_000); got != "1.50" {
		t.Errorf("invalid locale should fall back to en-US, got %q", got)
	}
}

func TestFormatter_AdaNeverPanics(t *testing.T) {
	f := newTestFormatter()
	for _, v := range []int64{0, 1, 999_999, 1_000_000, 45_000_000_000_000_000, math.MaxInt64, -1, math.MinInt64} {
		if got := f.Lovelace(v); got == "" {
			t.Errorf("Lovelace(%d) returned empty string", v)
		}
	}
}

func TestFormatter_Timestamp(t *testing.T) {
	f := newTestFormatter()

	if got := f.Timestamp(nil); got != "-" {
		t.Errorf("nil: got %q", got)
	}
	if got := f.Timestamp(ptr(int64(0))); got != "-" {
		t.Errorf("zero: got %q", got)
	}

	got := f.Timestamp(ptr(int64(1700000000)))
	if got != "11/14/2023, 10:13:20 PM" {
		t.Errorf("got %q", got)
	}

	for _, ts := range []int64{1, 86400, 1700000000, 4102444800} {
		if out := f.Timestamp(ptr(ts)); out == "" || out == "-" {
			t.Errorf("Timestamp(%d) = %q", ts, out)
		}
	}
}

func TestFormatter_Ago(t *testing.T) {
	f := newTestFormatter()

	if got := f.Ago(nil); got != "-" {
		t.Errorf("nil: got %q", got)
	}
	if got := f.Ago(ptr(int64(1700000000))); got != "1 hour ago" {
		t.Errorf("got %q", got)
	}
}

func TestFormatter_CountAndPercent(t *testing.T) {
	f := newTestFormatter()

	if got := f.Count(123456789); got != "123,456,789" {
		t.Errorf("Count: got %q", got)
	}
	if got := f.CountPtr(nil); got != "-" {
		t.Errorf("CountPtr(nil): got %q", got)
	}
	if got := f.Percent(50); got != "50" {
		t.Errorf("Percent(50): got %q", got)
	}
	if got := f.Percent(100.0 / 3); got != "33.3" {
		t.Errorf("Percent(33.33): got %q", got)
	}
}

func TestJSON(t *testing.T) {
	if got := JSON(nil); got != "-" {
		t.Errorf("nil: got %q", got)
	}
	if got := JSON(json.RawMessage(`null`)); got != "-" {
		t.Errorf("null: got %q", got)
	}
	if got := JSON(json.RawMessage(`{"a":1}`)); got != "{\n  \"a\": 1\n}" {
		t.Errorf("object: got %q", got)
	}
	if got := JSON(json.RawMessage(`{broken`)); got != "{broken" {
		t.Errorf("invalid JSON should be verbatim, got %q", got)
	}
}
