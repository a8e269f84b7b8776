package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rubiojr/gss/pkg/search"
	"github.com/rubiojr/gss/pkg/secret"
	"github.com/rubiojr/gss/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	searcher := s.Searcher()
	params, err := ParseSearchParams(r.URL.Query(), searcher.MaxPage())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid parameters", err.Error())
		return
	}

	// API requires a query parameter
	if params.Query == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query parameter", "Query parameter 'q' is required")
		return
	}

	outcome, err := searcher.Search(SearchContext(r, params.Lang), params.Query, params.Page)
	if err != nil {
		if errors.Is(err, search.ErrInvalidPage) {
			s.writeError(w, http.StatusBadRequest, "Invalid parameters", err.Error())
			return
		}
		s.logger.Errorf("search %q failed (request %s): %v", params.Query, RequestID(r.Context()), err)
		s.writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, NewSearchResponse(outcome, searcher.PageSize(), searcher.PagerSize()))
}

// NewSearchResponse flattens an outcome and its pager into the API shape.
func NewSearchResponse(outcome *search.Outcome, pageSize, pagerSize int) SearchResponse {
	pager := outcome.Pager(pageSize, pagerSize)
	response := SearchResponse{
		Query:         outcome.Keywords,
		Language:      outcome.Language,
		Page:          outcome.Page,
		RequestedPage: outcome.RequestedPage,
		PageSize:      pageSize,
		TotalResults:  outcome.Total,
		TotalPages:    pager.TotalPages,
		Pages:         pager.Pages,
		HasPrev:       pager.HasPrev,
		HasNext:       pager.HasNext,
		Results:       outcome.Results,
		Labels:        outcome.Labels(),
		LabelLinks:    search.LabelLinks(outcome.Keywords, outcome.Labels()),
	}
	if response.Pages == nil {
		response.Pages = []int{}
	}
	if outcome.Err != nil {
		response.UpstreamError = outcome.Err.Error()
	}
	return response
}

func (s *Server) HandleSettings(w http.ResponseWriter, r *http.Request) {
	settings := s.Searcher().Settings()
	s.writeJSON(w, http.StatusOK, SettingsResponse{
		PageSize:  settings.PageSize,
		PagerSize: settings.PagerSize,
		Labels:    settings.Labels,
		MaxPage:   settings.MaxPage(),
		EngineID:  settings.EngineID,
		BaseURL:   settings.BaseURL,
		KeyRef:    secret.Describe(settings.APIKey),
	})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
