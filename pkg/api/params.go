package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rubiojr/gss/pkg/locale"
)

// SearchParams are the query parameters of a search request.
type SearchParams struct {
	Query string
	// Page is zero-based.
	Page int
	// Lang is an explicit interface language override.
	Lang string
}

// ParseSearchParams reads q, page and lang (hl is accepted as an alias).
// Pages above maxPage are rejected. A missing q is not an error.
func ParseSearchParams(values url.Values, maxPage int) (SearchParams, error) {
	params := SearchParams{
		Query: strings.TrimSpace(values.Get("q")),
		Lang:  strings.TrimSpace(values.Get("lang")),
	}
	if params.Lang == "" {
		params.Lang = strings.TrimSpace(values.Get("hl"))
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("invalid page %q: %w", raw, err)
		}
		if page < 0 {
			return params, fmt.Errorf("invalid page %d: must not be negative", page)
		}
		if page > maxPage {
			return params, fmt.Errorf("invalid page %d: the last page is %d", page, maxPage)
		}
		params.Page = page
	}

	return params, nil
}

// SearchContext returns r's context carrying its Accept-Language header
// and the explicit language, if one was given.
func SearchContext(r *http.Request, lang string) context.Context {
	ctx := locale.WithAcceptLanguage(r.Context(), r.Header.Get("Accept-Language"))
	return locale.WithLanguage(ctx, lang)
}
