package procyclingstats

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
)

var (
	raceLinkPattern  = regexp.MustCompile(`(?i)^/(?:race|races)/([A-Za-z0-9\-_%]+)`)
	raceClassPattern = regexp.MustCompile(`(?i)\b(1\.UWT|2\.UWT|1\.Pro|2\.Pro|1\.HC|2\.HC|1\.1|1\.2|2\.1|2\.2|HC|UWT|Pro)\b`)
)

// ParseCalendar reads the races of a calendar listing. Rows without a
// resolvable date are returned with HasDate=false.
func ParseCalendar(doc *goquery.Document, opts CalendarOptions) []usecase.ParsedRaceRow {
	if opts.DefaultHour == 0 && opts.DefaultMinute == 0 {
		opts.DefaultHour = defaultStartHour
	}

	strategies := []strategy[usecase.ParsedRaceRow]{
		func(doc *goquery.Document) ([]usecase.ParsedRaceRow, bool) {
			rows := calendarFromTableRows(doc, opts)
			return rows, len(rows) > 0
		},
		func(doc *goquery.Document) ([]usecase.ParsedRaceRow, bool) {
			rows := calendarFromLinkScan(doc, opts)
			return rows, len(rows) > 0
		},
	}
	return runStrategies(doc, strategies)
}

func calendarFromTableRows(doc *goquery.Document, opts CalendarOptions) []usecase.ParsedRaceRow {
	out := make([]usecase.ParsedRaceRow, 0, 64)
	seen := make(map[string]struct{}, 64)

	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		var (
			anchor *goquery.Selection
			slug   string
		)
		tr.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if candidate, ok := slugFromHref(href); ok {
				anchor, slug = a, candidate
				return false
			}
			return true
		})
		if anchor == nil {
			return
		}
		appendCalendarRow(&out, seen, parseCalendarRow(tr, anchor, slug, opts))
	})

	return out
}

func calendarFromLinkScan(doc *goquery.Document, opts CalendarOptions) []usecase.ParsedRaceRow {
	out := make([]usecase.ParsedRaceRow, 0, 64)
	seen := make(map[string]struct{}, 64)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		slug, ok := slugFromHref(href)
		if !ok {
			return
		}
		row := a.Closest("tr")
		if row.Length() == 0 {
			row = a.Parent()
		}
		appendCalendarRow(&out, seen, parseCalendarRow(row, a, slug, opts))
	})

	return out
}

func appendCalendarRow(out *[]usecase.ParsedRaceRow, seen map[string]struct{}, row usecase.ParsedRaceRow) {
	if _, ok := seen[row.Slug]; ok {
		return
	}
	seen[row.Slug] = struct{}{}
	*out = append(*out, row)
}

func parseCalendarRow(row, anchor *goquery.Selection, slug string, opts CalendarOptions) usecase.ParsedRaceRow {
	item := usecase.ParsedRaceRow{
		Slug:     slug,
		Name:     cleanText(anchor.Text()),
		Category: race.CategoryOther,
	}

	if startAt, ok := calendarRowDate(row, anchor, opts); ok {
		item.StartAt = startAt
		item.HasDate = true
	}

	item.ClassCode = calendarRowClass(row, anchor)
	if strings.HasSuffix(strings.ToUpper(item.ClassCode), "UWT") {
		item.Category = race.CategoryWorldTour
	}

	return item
}

// calendarRowDate walks the date sources of a row in order of reliability.
// A source only wins when its text parses.
func calendarRowDate(row, anchor *goquery.Selection, opts CalendarOptions) (time.Time, bool) {
	if cell := row.Find("td.cu500").First(); cell.Length() > 0 {
		if startAt, ok := parseCalendarDate(cell.Text(), opts); ok {
			return startAt, true
		}
	}

	if tag := row.Find("time").First(); tag.Length() > 0 {
		if value, ok := tag.Attr("datetime"); ok {
			if startAt, ok := parseCalendarDate(value, opts); ok {
				return startAt, true
			}
		}
		if startAt, ok := parseCalendarDate(tag.Text(), opts); ok {
			return startAt, true
		}
	}

	if next := anchor.Closest("td").NextAllFiltered("td").First(); next.Length() > 0 {
		if startAt, ok := parseCalendarDate(next.Text(), opts); ok {
			return startAt, true
		}
	}

	return findRowDate(cleanText(row.Text()), opts)
}

// calendarRowClass checks the two cells after the link cell before falling
// back to the whole row.
func calendarRowClass(row, anchor *goquery.Selection) string {
	siblings := anchor.Closest("td").NextAllFiltered("td")
	for idx := 0; idx < 2 && idx < siblings.Length(); idx++ {
		if match := raceClassPattern.FindString(cleanText(siblings.Eq(idx).Text())); match != "" {
			return match
		}
	}
	return raceClassPattern.FindString(cleanText(row.Text()))
}

// slugFromHref accepts relative, root-relative and absolute race links.
func slugFromHref(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	lower := strings.ToLower(href)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "//"):
		parsed, err := url.Parse(href)
		if err != nil {
			return "", false
		}
		href = parsed.EscapedPath()
	case !strings.HasPrefix(href, "/"):
		href = "/" + href
	}

	match := raceLinkPattern.FindStringSubmatch(href)
	if match == nil {
		return "", false
	}
	return match[1], true
}
