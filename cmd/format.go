package cmd

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// formatNumber formats a number with K/M suffixes for readability
func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// plainSnippet turns snippet markup into a single line of text.
func plainSnippet(snippet string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return snippet
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// resultsLine summarises a page of results for the terminal. The total is
// an estimate and may be missing.
func resultsLine(total int64, shown int) string {
	if shown == 0 {
		return "No results"
	}
	if total <= 0 {
		return fmt.Sprintf("%d results", shown)
	}
	return fmt.Sprintf("About %s results", formatNumber(total))
}
