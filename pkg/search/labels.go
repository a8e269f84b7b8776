package search

import (
	"strings"

	"github.com/rubiojr/gss/pkg/customsearch"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Facet is a refinement label as returned by the API.
type Facet = customsearch.Facet

// ExtractFacets returns the response's facet groups unchanged when labels
// are enabled and the response has any; otherwise nil.
func ExtractFacets(resp *customsearch.Response, labels bool) [][]Facet {
	if !labels {
		return nil
	}
	facets := resp.Facets()
	if len(facets) == 0 {
		return nil
	}
	return facets
}

// LabelLink is a "show only results of type" refinement.
type LabelLink struct {
	// Text is what a user sees.
	Text  string `json:"text"`
	Label string `json:"label"`
	// Query is the keywords with the refinement operator appended.
	Query string `json:"query"`
}

var titleCaser = cases.Title(language.Und)

// LabelLinks flattens facet groups into refinement links for keywords.
// Facets without a label are skipped; duplicates keep their first
// position.
func LabelLinks(keywords string, facets [][]Facet) []LabelLink {
	keywords = strings.TrimSpace(keywords)
	var links []LabelLink
	seen := make(map[string]bool)

	for _, group := range facets {
		for _, f := range group {
			if f.Label == "" || seen[f.Label] {
				continue
			}
			seen[f.Label] = true

			op := f.LabelWithOp
			if op == "" {
				op = "more:" + f.Label
			}
			text := f.Anchor
			if text == "" {
				text = titleCaser.String(strings.ReplaceAll(f.Label, "_", " "))
			}
			query := op
			if keywords != "" {
				query = keywords + " " + op
			}
			links = append(links, LabelLink{Text: text, Label: f.Label, Query: query})
		}
	}

	return links
}
