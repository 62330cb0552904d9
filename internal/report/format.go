package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only date format the PMS speaks: DD/MM/YYYY.
const DateLayout = "02/01/2006"

// epochMsRe matches the legacy ASP.NET "/Date(1723248000000)/" encoding.
var epochMsRe = regexp.MustCompile(`/Date\((-?\d+)\)/`)

// upstreamLayouts are the date encodings seen across PMS page versions.
var upstreamLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	DateLayout,
}

// ParseUpstreamDate decodes a date string from the calendar blob, trying each
// known encoding. The boolean is false when nothing matched.
func ParseUpstreamDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if m := epochMsRe.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return time.UnixMilli(ms), true
		}
	}
	for _, layout := range upstreamLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Midnight strips the time of day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatAmount renders an amount the way the report table does: integer
// digits with dot thousands separators and no currency suffix.
func FormatAmount(amount float64) string {
	n := int64(amount + 0.5)
	if amount < 0 {
		n = int64(amount - 0.5)
	}
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Nights returns the stay length in nights from two DD/MM/YYYY dates,
// clamped to at least one: a same-day stay is still billed one night.
// Unparseable dates also count as one night rather than poisoning the report.
func Nights(checkinDate, checkoutDate string) int {
	in, err1 := time.Parse(DateLayout, checkinDate)
	out, err2 := time.Parse(DateLayout, checkoutDate)
	if err1 != nil || err2 != nil {
		return 1
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}
