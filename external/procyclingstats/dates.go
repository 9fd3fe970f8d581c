package procyclingstats

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// "07.03" or the first day of a stage race range "07.03 - 13.03".
	dayMonthPattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})(?:\s*-\s*\d{1,2}\.\d{1,2})?$`)
	rowDatePattern  = regexp.MustCompile(`(?i)\b(\d{1,2}\s+[A-Za-zéûôç'-]{3,}\s+\d{4}|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4})\b`)
)

var dateOnlyLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"2 January 2006",
	"2 Jan 2006",
}

// CalendarOptions anchors day-level calendar dates to a year and a local start time.
type CalendarOptions struct {
	Year          int
	Location      *time.Location
	DefaultHour   int
	DefaultMinute int
}

func (o CalendarOptions) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// parseCalendarDate turns a calendar cell into a start time. Every format is
// day-level, so the result always sits at the default start time in the
// reference zone.
func parseCalendarDate(raw string, opts CalendarOptions) (time.Time, bool) {
	raw = cleanText(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if m := dayMonthPattern.FindStringSubmatch(raw); m != nil {
		if opts.Year <= 0 {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return dateAt(opts.Year, month, day, opts)
	}

	// datetime attributes may carry a time part; only the day counts.
	if len(raw) > 10 && raw[4] == '-' && raw[7] == '-' && (raw[10] == 'T' || raw[10] == ' ') {
		raw = raw[:10]
	}
	for _, layout := range dateOnlyLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return dateAt(parsed.Year(), int(parsed.Month()), parsed.Day(), opts)
	}

	return time.Time{}, false
}

// findRowDate looks for the first full date inside free row text.
func findRowDate(text string, opts CalendarOptions) (time.Time, bool) {
	match := rowDatePattern.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, false
	}
	return parseCalendarDate(strings.TrimSpace(match[1]), opts)
}

func dateAt(year, month, day int, opts CalendarOptions) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	out := time.Date(year, time.Month(month), day, opts.DefaultHour, opts.DefaultMinute, 0, 0, opts.location())
	// time.Date normalizes 31.02 into March; reject instead.
	if out.Day() != day || int(out.Month()) != month {
		return time.Time{}, false
	}
	return out, true
}
