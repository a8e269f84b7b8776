package search

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rubiojr/gss/pkg/customsearch"
)

// Defaults mirror the settings a fresh installation starts with.
const (
	DefaultPageSize  = 10
	DefaultPagerSize = 9
)

// ErrInvalidSettings wraps every Settings validation failure.
var ErrInvalidSettings = errors.New("invalid search settings")

// Settings is the per-invocation search configuration.
type Settings struct {
	// APIKey is a key reference, resolved through a secret.Resolver at
	// search time. It is never sent anywhere as-is unless it is a literal.
	APIKey string
	// EngineID is the "cx" identifier of the programmable search engine.
	EngineID string
	// BaseURL is the endpoint to query; override it to go through a proxy.
	BaseURL string
	// PageSize is the number of results on one logical page.
	PageSize int
	// PagerSize is the number of page links a pager shows. Odd numbers keep
	// the current page centred.
	PagerSize int
	// Labels enables facet (label) extraction.
	Labels bool
	// MaxResults is the deepest result position the endpoint serves. Pages
	// starting at or past it are rejected.
	MaxResults int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:    customsearch.DefaultBaseURL,
		PageSize:   DefaultPageSize,
		PagerSize:  DefaultPagerSize,
		Labels:     true,
		MaxResults: customsearch.MaxResults,
	}
}

// Validate checks the structural invariants. Missing credentials are not
// checked here.
func (s Settings) Validate() error {
	if s.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidSettings, s.PageSize)
	}
	if s.PagerSize <= 0 {
		return fmt.Errorf("%w: pager size must be positive, got %d", ErrInvalidSettings, s.PagerSize)
	}
	if s.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive, got %d", ErrInvalidSettings, s.MaxResults)
	}
	if s.BaseURL != "" {
		u, err := url.Parse(s.BaseURL)
		if err != nil {
			return fmt.Errorf("%w: base url: %v", ErrInvalidSettings, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%w: base url must be http or https, got %q", ErrInvalidSettings, s.BaseURL)
		}
		if u.Host == "" {
			return fmt.Errorf("%w: base url has no host: %q", ErrInvalidSettings, s.BaseURL)
		}
	}
	return nil
}

// MaxPage returns the last page index that starts below MaxResults.
func (s Settings) MaxPage() int {
	if s.PageSize <= 0 || s.MaxResults <= 0 {
		return 0
	}
	return (s.MaxResults - 1) / s.PageSize
}
