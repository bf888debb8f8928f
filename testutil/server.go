package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// Server is a fake CDN backed by httptest. Request paths are routed to
// scripted responses and unrouted paths return 404. Close must be called
// when done, typically via t.Cleanup.
type Server struct {
	*httptest.Server
	mu     sync.Mutex
	routes map[string]response
	hits   []string
}

type response struct {
	status int
	body   string
}

// NewServer starts an empty fake CDN.
func NewServer() *Server {
	s := &Server{routes: make(map[string]response)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Route serves body with the given status for an exact request path.
func (s *Server) Route(path string, status int, body string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = response{status: status, body: body}
	return s
}

// Script serves body with status 200 for path.
func (s *Server) Script(path, body string) *Server {
	return s.Route(path, http.StatusOK, body)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits = append(s.hits, r.URL.Path)
	resp, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

// Hits returns the request paths received in order.
func (s *Server) Hits() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.hits))
	copy(out, s.hits)
	return out
}

// Template returns a resolver template pattern rooted at this server, for
// example Template("/npm/{package}@{version}/{path}").
func (s *Server) Template(pattern string) string {
	return s.URL + pattern
}
