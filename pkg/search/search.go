package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rubiojr/gss/pkg/customsearch"
	"github.com/rubiojr/gss/pkg/locale"
	"github.com/rubiojr/gss/pkg/log"
	"github.com/rubiojr/gss/pkg/secret"
)

// ErrInvalidPage is returned for negative page indexes and pages that
// start past Settings.MaxResults.
var ErrInvalidPage = errors.New("invalid page index")

// Fetcher performs one remote API call. *customsearch.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, q customsearch.Query) (*customsearch.Response, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, q customsearch.Query) (*customsearch.Response, error)

// Fetch calls f(ctx, q).
func (f FetcherFunc) Fetch(ctx context.Context, q customsearch.Query) (*customsearch.Response, error) {
	return f(ctx, q)
}

// Request is one search as issued by a caller.
type Request struct {
	Keywords string
	// Page is the zero-based logical page.
	Page int
	// Language is the interface language sent as "hl".
	Language string
}

// Outcome is everything a caller needs to render a search.
type Outcome struct {
	Keywords string   `json:"keywords"`
	Language string   `json:"language"`
	Results  []Result `json:"results"`
	// Total is the API's best-effort total. It may be stale or zero even
	// when Results is not empty.
	Total int64 `json:"total"`
	// Facets is nil when labels are disabled or none were returned.
	Facets [][]Facet `json:"facets,omitempty"`
	// Page is the page the results come from. It is lower than
	// RequestedPage when the search fell back to an earlier page.
	Page          int `json:"page"`
	RequestedPage int `json:"requested_page"`
	// Calls is the number of remote calls made.
	Calls int `json:"calls"`
	// Err is the first upstream failure seen, if any.
	Err error `json:"-"`
}

// Labels returns the facet groups of the search, or nil.
func (o *Outcome) Labels() [][]Facet {
	if o == nil {
		return nil
	}
	return o.Facets
}

// FellBack reports whether the results come from an earlier page than
// the one requested.
func (o *Outcome) FellBack() bool {
	return o != nil && o.Page != o.RequestedPage
}

// Searcher runs searches with a fixed set of settings.
type Searcher struct {
	settings Settings
	fetcher  Fetcher
	locale   locale.Provider
	secrets  secret.Resolver
	logger   *log.Logger
}

// New returns a Searcher. A nil fetcher means a customsearch.Client for
// settings.BaseURL, a nil locale provider means English and a nil resolver
// means secret.Default.
func New(settings Settings, fetcher Fetcher, lp locale.Provider, sr secret.Resolver) (*Searcher, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if fetcher == nil {
		fetcher = customsearch.NewClient(settings.BaseURL)
	}
	if lp == nil {
		lp = locale.Fixed("en")
	}
	if sr == nil {
		sr = secret.Default
	}

	logger := log.ForService("search")
	if settings.PagerSize%2 == 0 {
		logger.Warnf("pager size %d is even; use an odd number to keep the current page centred", settings.PagerSize)
	}

	return &Searcher{
		settings: settings,
		fetcher:  fetcher,
		locale:   lp,
		secrets:  sr,
		logger:   logger,
	}, nil
}

// Settings returns the settings the Searcher was built with.
func (s *Searcher) Settings() Settings {
	return s.settings
}

// PagerSize returns the configured number of pager links.
func (s *Searcher) PagerSize() int {
	return s.settings.PagerSize
}

// PageSize returns the configured number of results per page.
func (s *Searcher) PageSize() int {
	return s.settings.PageSize
}

// MaxPage returns the highest page index Search accepts.
func (s *Searcher) MaxPage() int {
	return s.settings.MaxPage()
}

// Search runs keywords for the zero-based page. Upstream failures are
// reported on Outcome.Err, not as the returned error.
func (s *Searcher) Search(ctx context.Context, keywords string, page int) (*Outcome, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: %d must not be negative", ErrInvalidPage, page)
	}
	if maxPage := s.MaxPage(); page > maxPage {
		return nil, fmt.Errorf("%w: %d is past the last page %d", ErrInvalidPage, page, maxPage)
	}

	lang := s.locale.Language(ctx)
	outcome := &Outcome{
		Keywords:      keywords,
		Language:      lang,
		Results:       []Result{},
		Page:          page,
		RequestedPage: page,
	}

	if strings.TrimSpace(keywords) == "" {
		return outcome, nil
	}

	key, err := s.secrets.Resolve(s.settings.APIKey)
	if err != nil {
		return nil, fmt.Errorf("resolving api key %s: %w", secret.Describe(s.settings.APIKey), err)
	}

	req := Request{Keywords: keywords, Page: page, Language: lang}
	a := s.execute(ctx, req, key)

	outcome.Results = MapItems(a.items, lang)
	outcome.Total = a.total
	outcome.Facets = a.facets
	outcome.Page = a.page
	outcome.Calls = a.calls
	outcome.Err = a.err

	if a.err != nil {
		s.logger.Warnf("search %q page %d degraded: %v", keywords, page, a.err)
	}
	s.logger.Debugf("search %q page %d -> page %d, %d results, total %d, %d calls",
		keywords, page, a.page, len(outcome.Results), a.total, a.calls)

	return outcome, nil
}
