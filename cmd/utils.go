package cmd

import (
	"fmt"
	"net/http"

	"github.com/rubiojr/gss/pkg/config"
	"github.com/rubiojr/gss/pkg/customsearch"
	"github.com/rubiojr/gss/pkg/search"
	"github.com/rubiojr/gss/pkg/secret"
)

// loadConfig loads the configuration and warns about missing credentials.
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Search.APIKey == "" {
		logger.Warnf("no api key configured; set search.api_key in %s or GSS_API_KEY", configPath)
	}
	if cfg.Search.SearchEngineID == "" {
		logger.Warnf("no search engine id configured; set search.search_engine_id in %s or GSS_SEARCH_ENGINE_ID", configPath)
	}
	return cfg, nil
}

// newSearcher wires a Searcher from the configuration.
func newSearcher(cfg *config.Config) (*search.Searcher, error) {
	settings := cfg.ToSettings()

	client := customsearch.NewClient(settings.BaseURL,
		customsearch.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout.Std()}),
	)

	matcher, err := cfg.NewLocaleMatcher()
	if err != nil {
		return nil, fmt.Errorf("configuring languages: %w", err)
	}

	searcher, err := search.New(settings, client, matcher, secret.Default)
	if err != nil {
		return nil, fmt.Errorf("creating searcher: %w", err)
	}
	return searcher, nil
}
