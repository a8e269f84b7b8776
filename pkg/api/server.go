package api

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/rubiojr/gss/pkg/log"
	"github.com/rubiojr/gss/pkg/search"
)

// Server exposes a search.Searcher over HTTP. The searcher can be swapped
// while requests are in flight; each request uses the one it started with.
type Server struct {
	searcher atomic.Pointer[search.Searcher]
	logger   *log.Logger
}

func NewServer(searcher *search.Searcher) *Server {
	s := &Server{logger: log.ForService("api")}
	s.searcher.Store(searcher)
	return s
}

// Searcher returns the current searcher.
func (s *Server) Searcher() *search.Searcher {
	return s.searcher.Load()
}

// SetSearcher replaces the searcher used by new requests.
func (s *Server) SetSearcher(searcher *search.Searcher) {
	s.searcher.Store(searcher)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}
