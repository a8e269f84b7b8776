package api

import (
	"time"

	"github.com/rubiojr/gss/pkg/search"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SearchResponse struct {
	Query         string             `json:"query"`
	Language      string             `json:"language"`
	Page          int                `json:"page"`
	RequestedPage int                `json:"requested_page"`
	PageSize      int                `json:"page_size"`
	TotalResults  int64              `json:"total_results"`
	TotalPages    int                `json:"total_pages"`
	Pages         []int              `json:"pages"`
	HasPrev       bool               `json:"has_prev"`
	HasNext       bool               `json:"has_next"`
	Results       []search.Result    `json:"results"`
	Labels        [][]search.Facet   `json:"labels,omitempty"`
	LabelLinks    []search.LabelLink `json:"label_links,omitempty"`
	UpstreamError string             `json:"upstream_error,omitempty"`
}

// SettingsResponse never includes the api key.
type SettingsResponse struct {
	PageSize  int    `json:"page_size"`
	PagerSize int    `json:"pager_size"`
	Labels    bool   `json:"labels"`
	MaxPage   int    `json:"max_page"`
	EngineID  string `json:"search_engine_id"`
	BaseURL   string `json:"base_url"`
	KeyRef    string `json:"api_key_ref"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
