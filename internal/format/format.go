// Package format renders canonical values for display: ADA amounts,
// timestamps, truncated hashes and opaque metadata.
package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display defaults.
const (
	DefaultLocale     = "en-US"
	DefaultTimeLayout = "1/2/2006, 3:04:05 PM"
	Placeholder       = "-"

	// LovelacePerAda is the number of minor units in one ADA.
	LovelacePerAda = 1_000_000

	minFractionDigits = 2
	maxFractionDigits = 6
)

// Options configures a Formatter.
type Options struct {
	Locale   string         // BCP 47 tag, default en-US
	Location *time.Location // default time.Local
	Layout   string         // time layout, default DefaultTimeLayout
	Now      func() time.Time
}

// Formatter renders values for one locale and time zone.
// It is immutable and safe for concurrent use.
type Formatter struct {
	printer  *message.Printer
	decimal  string
	location *time.Location
	layout   string
	now      func() time.Time
}

// New creates a Formatter. Unparseable locales fall back to en-US.
func New(opts Options) *Formatter {
	tag, err := language.Parse(opts.Locale)
	if err != nil || opts.Locale == "" {
		tag = language.AmericanEnglish
	}

	f := &Formatter{
		printer:  message.NewPrinter(tag),
		location: opts.Location,
		layout:   opts.Layout,
		now:      opts.Now,
	}
	if f.location == nil {
		f.location = time.Local
	}
	if f.layout == "" {
		f.layout = DefaultTimeLayout
	}
	if f.now == nil {
		f.now = time.Now
	}
	f.decimal = decimalSeparator(f.printer)
	return f
}

// decimalSeparator asks the locale how it writes 1.5 and keeps what sits
// between the digits.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	sep := strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
	if sep == "" || len(sep) > 4 || sep == s {
		return "."
	}
	return sep
}

// Ada converts lovelace to an ADA string with 2 to 6 fraction digits and
// locale grouping. A nil amount formats as "0.00".
func (f *Formatter) Ada(lovelace *int64) string {
	if lovelace == nil {
		return f.Lovelace(0)
	}
	return f.Lovelace(*lovelace)
}

// Lovelace formats a non-nil lovelace amount. The division is exact.
func (f *Formatter) Lovelace(lovelace int64) string {
	d := decimal.New(lovelace, -6)
	sign := ""
	if d.Sign() < 0 {
		sign = "-"
		d = d.Abs()
	}

	whole := d.Truncate(0)
	fraction := d.Sub(whole).StringFixed(maxFractionDigits) // "0.ffffff"
	digits := strings.TrimPrefix(fraction, "0.")
	for len(digits) > minFractionDigits && strings.HasSuffix(digits, "0") {
		digits = digits[:len(digits)-1]
	}

	return sign + f.printer.Sprintf("%d", whole.IntPart()) + f.decimal + digits
}

// Timestamp formats Unix seconds in the configured zone and layout.
// Nil and zero format as "-".
func (f *Formatter) Timestamp(unix *int64) string {
	if unix == nil || *unix == 0 {
		return Placeholder
	}
	return time.Unix(*unix, 0).In(f.location).Format(f.layout)
}

// Ago formats Unix seconds relative to now, e.g. "3 hours ago".
func (f *Formatter) Ago(unix *int64) string {
	if unix == nil || *unix == 0 {
		return Placeholder
	}
	return humanize.RelTime(time.Unix(*unix, 0), f.now(), "ago", "from now")
}

// Count formats an integer with locale grouping.
func (f *Formatter) Count(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// CountPtr is Count with "-" for nil.
func (f *Formatter) CountPtr(n *int64) string {
	if n == nil {
		return Placeholder
	}
	return f.Count(*n)
}

// Percent formats a 0..100 value without trailing zeros, e.g. "50", "33.3".
func (f *Formatter) Percent(p float64) string {
	return f.printer.Sprint(number.Decimal(p, number.MaxFractionDigits(1)))
}

// Truncate shortens s to its first and last n runes joined by "...".
// Strings of at most 2n runes are returned unchanged. Negative n counts as 0.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	runes := []rune(s)
	if len(runes) <= 2*n {
		return s
	}
	return string(runes[:n]) + "..." + string(runes[len(runes)-n:])
}

// TruncatePtr is Truncate with "-" for nil.
func TruncatePtr(s *string, n int) string {
	if s == nil {
		return Placeholder
	}
	return Truncate(*s, n)
}

// Text dereferences s, returning "-" for nil.
func Text(s *string) string {
	if s == nil {
		return Placeholder
	}
	return *s
}

// JSON pretty-prints opaque metadata. Invalid JSON is returned verbatim;
// empty metadata renders as "-".
func JSON(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Placeholder
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
