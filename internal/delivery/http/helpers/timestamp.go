package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Compact timestamps arrive as 20260115_0630, with optional date dashes and
// an optional colon in the time part: 2026-01-15_06:30 is also accepted.
var compactTimeRegexp = regexp.MustCompile(`^(\d{4})-?(\d\d)-?(\d\d)_(\d\d):?(\d\d)$`)

// ParseCompactTime parses a compact timestamp into a UTC time.
func ParseCompactTime(s string) (time.Time, error) {
	m := compactTimeRegexp.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, want YYYYMMDD_HHMM", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: out-of-range field", s)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}
