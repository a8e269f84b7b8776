package search

import (
	"html/template"

	"github.com/rubiojr/gss/pkg/customsearch"
)

// Result is one renderable search result.
//
// Type, Node, Extra, Score and Author exist for renderers that expect the
// full result shape; they are always empty because results are not
// correlated with local content.
type Result struct {
	Link  string `json:"link"`
	Title string `json:"title"`
	// Snippet is markup produced by the search API (it highlights matched
	// terms) and is used as-is.
	Snippet  template.HTML `json:"snippet"`
	Langcode string        `json:"langcode"`

	Type   string   `json:"type,omitempty"`
	Node   string   `json:"node,omitempty"`
	Extra  []string `json:"extra,omitempty"`
	Score  *float64 `json:"score,omitempty"`
	Author string   `json:"author,omitempty"`
}

// MapItems converts API items to results, one to one and in order. Every
// result carries lang, the caller's interface language.
func MapItems(items []customsearch.Item, lang string) []Result {
	results := make([]Result, len(items))
	for i, item := range items {
		results[i] = Result{
			Link:     item.Link,
			Title:    item.Title,
			Snippet:  template.HTML(item.HTMLSnippet),
			Langcode: lang,
		}
	}
	return results
}
