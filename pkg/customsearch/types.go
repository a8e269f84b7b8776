package customsearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Response is the decoded JSON envelope returned by the Custom Search API.
// Only the parts gss consumes are modelled; everything else is ignored.
type Response struct {
	// Items is nil when the response carries no "items" field, which the
	// API does once a query runs past its last result.
	Items             []Item             `json:"items"`
	SearchInformation *SearchInformation `json:"searchInformation,omitempty"`
	Context           *Context           `json:"context,omitempty"`
}

// HasItems reports whether the response carried an "items" field.
func (r *Response) HasItems() bool {
	return r != nil && r.Items != nil
}

// TotalResults returns the reported total, or zero when absent.
func (r *Response) TotalResults() int64 {
	if r == nil || r.SearchInformation == nil {
		return 0
	}
	return int64(r.SearchInformation.TotalResults)
}

// Facets returns the facet groups, or nil when absent.
func (r *Response) Facets() [][]Facet {
	if r == nil || r.Context == nil {
		return nil
	}
	return r.Context.Facets
}

// Item is a single search result.
type Item struct {
	Kind             string      `json:"kind,omitempty"`
	Title            string      `json:"title"`
	HTMLTitle        string      `json:"htmlTitle,omitempty"`
	Link             string      `json:"link"`
	DisplayLink      string      `json:"displayLink,omitempty"`
	Snippet          string      `json:"snippet,omitempty"`
	HTMLSnippet      string      `json:"htmlSnippet"`
	FormattedURL     string      `json:"formattedUrl,omitempty"`
	HTMLFormattedURL string      `json:"htmlFormattedUrl,omitempty"`
	Mime             string      `json:"mime,omitempty"`
	FileFormat       string      `json:"fileFormat,omitempty"`
	Labels           []ItemLabel `json:"labels,omitempty"`
}

// ItemLabel is a refinement label attached to an individual item.
type ItemLabel struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	LabelWithOp string `json:"label_with_op"`
}

// SearchInformation holds the (unreliable) grand total.
type SearchInformation struct {
	SearchTime            float64 `json:"searchTime,omitempty"`
	FormattedSearchTime   string  `json:"formattedSearchTime,omitempty"`
	TotalResults          Count   `json:"totalResults"`
	FormattedTotalResults string  `json:"formattedTotalResults,omitempty"`
}

// Context carries engine metadata, including refinement facets.
type Context struct {
	Title  string    `json:"title,omitempty"`
	Facets [][]Facet `json:"facets,omitempty"`
}

// Facet is one refinement label.
type Facet struct {
	Label       string `json:"label"`
	Anchor      string `json:"anchor"`
	LabelWithOp string `json:"label_with_op"`
}

// Count decodes totals sent either as a JSON string ("1230") or a number.
type Count int64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*c = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parsing total results %q: %w", data, err)
	}
	*c = Count(n)
	return nil
}

// apiError is the error envelope Google sends with non-2xx responses.
type apiError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
