package procyclingstats

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
)

// Fixed column offsets of the classic results layout.
const (
	defaultRiderColumn = 5
	defaultTeamColumn  = 6
)

type resultColumns struct {
	rider int
	team  int
}

var resultStrategies = []strategy[usecase.ParsedResultRow]{
	resultsFromTable("table.results"),
	resultsFromTable("table"),
}

// ParseResults reads the ranked rows of a race result page. Rows whose first
// cell is not a number keep that text (DNF, DNS, OTL) as Info.
func ParseResults(doc *goquery.Document) []usecase.ParsedResultRow {
	return runStrategies(doc, resultStrategies)
}

func resultsFromTable(selector string) strategy[usecase.ParsedResultRow] {
	return func(doc *goquery.Document) ([]usecase.ParsedResultRow, bool) {
		table := doc.Find(selector).First()
		if table.Length() == 0 {
			return nil, false
		}

		rows := parseResultTable(table)
		return rows, len(rows) > 0
	}
}

func parseResultTable(table *goquery.Selection) []usecase.ParsedResultRow {
	cols := resultColumnsFor(table)
	out := make([]usecase.ParsedResultRow, 0, 64)

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() <= 2 || cols.rider >= cells.Length() {
			return
		}

		name := linkOrText(cells.Eq(cols.rider))
		if name == "" {
			return
		}

		row := usecase.ParsedResultRow{RiderName: name}
		if cols.team >= 0 && cols.team < cells.Length() {
			row.TeamName = linkOrText(cells.Eq(cols.team))
		}

		rank := cleanText(cells.First().Text())
		if n, err := strconv.Atoi(rank); err == nil && isAllDigits(rank) && n > 0 {
			row.Position = &n
		} else if rank != "" {
			info := rank
			row.Info = &info
		}

		out = append(out, row)
	})

	return out
}

// resultColumnsFor locates the rider and team columns from the header row,
// falling back to the classic offsets.
func resultColumnsFor(table *goquery.Selection) resultColumns {
	cols := resultColumns{rider: -1, team: -1}

	header := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.ChildrenFiltered("th").Length() > 0
	}).First()
	header.Children().Each(func(idx int, cell *goquery.Selection) {
		label := strings.ToLower(cleanText(cell.Text()))
		switch {
		case cols.rider < 0 && strings.Contains(label, "rider"):
			cols.rider = idx
		case cols.team < 0 && strings.Contains(label, "team"):
			cols.team = idx
		}
	})

	if cols.rider < 0 {
		return resultColumns{rider: defaultRiderColumn, team: defaultTeamColumn}
	}
	return cols
}
