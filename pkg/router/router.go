package router

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"
)

// Router matches request paths against a route table. Pattern syntax is
// chi's ("/users/{id}", "/files/*").
type Router struct {
	mux     *chi.Mux
	entries map[string]Entry
}

// Match is the result of a successful route lookup.
type Match struct {
	Pattern string
	Entry   Entry
	Params  map[string]string
}

// New validates routes and builds a router. All configuration problems are
// returned together.
func New(routes map[string]Entry) (*Router, error) {
	rt := &Router{
		mux:     chi.NewRouter(),
		entries: make(map[string]Entry, len(routes)),
	}

	patterns := make([]string, 0, len(routes))
	for pattern := range routes {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	var errs error
	for _, pattern := range patterns {
		entry := routes[pattern]
		if err := entry.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("route %q: %w", pattern, err))
			continue
		}
		if err := rt.register(pattern); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("route %q: %w", pattern, err))
			continue
		}
		rt.entries[pattern] = entry
	}
	if errs != nil {
		return nil, errs
	}
	return rt, nil
}

// register adds the pattern to chi. chi panics on malformed patterns.
func (rt *Router) register(pattern string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: invalid pattern: %v", ErrInvalidEntry, r)
		}
	}()
	rt.mux.Handle(pattern, http.NotFoundHandler())
	return nil
}

// Len returns the number of routes.
func (rt *Router) Len() int { return len(rt.entries) }

// Match finds the entry for a request.
func (rt *Router) Match(r *http.Request) (Match, bool) {
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}

	// Every pattern is registered for all methods and dispatch picks the
	// verb, so look up with GET: chi finds nothing for verbs outside its
	// method map.
	rctx := chi.NewRouteContext()
	pattern := rt.mux.Find(rctx, http.MethodGet, path)
	if pattern == "" {
		return Match{}, false
	}
	entry, ok := rt.entries[pattern]
	if !ok {
		return Match{}, false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}
	return Match{Pattern: pattern, Entry: entry, Params: params}, true
}
