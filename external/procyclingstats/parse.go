package procyclingstats

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// strategy is one way of reading a page section. ok is false when the
// layout it targets is not present, so the next strategy gets a turn.
type strategy[T any] func(doc *goquery.Document) (items []T, ok bool)

func runStrategies[T any](doc *goquery.Document, strategies []strategy[T]) []T {
	if doc == nil {
		return []T{}
	}
	for _, try := range strategies {
		if items, ok := try(doc); ok {
			return items
		}
	}
	return []T{}
}

func cleanText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// linkOrText prefers the text of the first anchor in sel.
func linkOrText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	if anchor := sel.Find("a").First(); anchor.Length() > 0 {
		if text := cleanText(anchor.Text()); text != "" {
			return text
		}
	}
	return cleanText(sel.Text())
}

func isAllDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
