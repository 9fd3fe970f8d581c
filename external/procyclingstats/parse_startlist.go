package procyclingstats

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
)

var startlistStrategies = []strategy[usecase.ParsedStartlistEntry]{
	startlistFromTeamBlocks,
	startlistFromAnchors("ul.startlist_v4 li ul li a"),
	startlistFromAnchors(".startlist li ul li a"),
}

// ParseStartlist reads rider names grouped by team from a startlist page.
func ParseStartlist(doc *goquery.Document) []usecase.ParsedStartlistEntry {
	return runStrategies(doc, startlistStrategies)
}

// ul.startlist_v4 > li is one team; its ridersCont holds the rider list.
func startlistFromTeamBlocks(doc *goquery.Document) ([]usecase.ParsedStartlistEntry, bool) {
	out := make([]usecase.ParsedStartlistEntry, 0, 176)

	doc.Find("ul.startlist_v4 > li").Each(func(_ int, teamItem *goquery.Selection) {
		teamName := startlistTeamName(teamItem)
		teamItem.Find("div.ridersCont ul li").Each(func(_ int, riderItem *goquery.Selection) {
			anchor := riderItem.Find("a").First()
			if anchor.Length() == 0 {
				return
			}
			name := cleanText(anchor.Text())
			if name == "" {
				return
			}
			out = append(out, usecase.ParsedStartlistEntry{RiderName: name, TeamName: teamName})
		})
	})

	return out, len(out) > 0
}

func startlistFromAnchors(selector string) strategy[usecase.ParsedStartlistEntry] {
	return func(doc *goquery.Document) ([]usecase.ParsedStartlistEntry, bool) {
		out := make([]usecase.ParsedStartlistEntry, 0, 176)

		doc.Find(selector).Each(func(_ int, anchor *goquery.Selection) {
			name := cleanText(anchor.Text())
			if name == "" {
				return
			}
			// rider li -> rider ul -> team li
			teamItem := anchor.ParentsFiltered("li").Eq(1)
			out = append(out, usecase.ParsedStartlistEntry{
				RiderName: name,
				TeamName:  startlistTeamName(teamItem),
			})
		})

		return out, len(out) > 0
	}
}

func startlistTeamName(teamItem *goquery.Selection) string {
	if teamItem == nil || teamItem.Length() == 0 {
		return ""
	}
	for _, selector := range []string{"a.team", "a[href^='team/']", "a[href^='/team/']"} {
		if anchor := teamItem.Find(selector).First(); anchor.Length() > 0 {
			if name := cleanText(anchor.Text()); name != "" {
				return name
			}
		}
	}
	return ""
}
