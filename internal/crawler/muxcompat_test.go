package crawler

import (
	"net/http"
	"strings"
)

// testMux dispatches "METHOD /path" patterns. Go 1.21's http.ServeMux does
// not understand method patterns, so the test servers route through this
// shim instead; handler registrations keep the 1.22-style pattern strings.
type testMux struct {
	routes map[string]map[string]http.HandlerFunc // path -> method -> handler
}

func newTestMux() *testMux {
	return &testMux{routes: map[string]map[string]http.HandlerFunc{}}
}

func (m *testMux) HandleFunc(pattern string, h http.HandlerFunc) {
	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		method, path = "", pattern
	}
	if m.routes[path] == nil {
		m.routes[path] = map[string]http.HandlerFunc{}
	}
	m.routes[path][method] = h
}

func (m *testMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	byMethod, ok := m.routes[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	h, ok := byMethod[r.Method]
	if !ok {
		h, ok = byMethod[""]
	}
	if !ok {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h(w, r)
}
