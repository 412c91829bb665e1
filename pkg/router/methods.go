package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vango-dev/hatch/pkg/response"
)

// MethodAll is the wildcard verb. It is used only when no exact verb
// matches and is never listed in Allow.
const MethodAll = "ALL"

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
	http.MethodHead:    {},
	MethodAll:          {},
}

// MethodRoute binds one verb to an entry inside a method table.
type MethodRoute struct {
	Method string
	Entry  Entry
}

// On binds method to entry. The method is upper-cased.
func On(method string, e Entry) MethodRoute {
	return MethodRoute{Method: strings.ToUpper(method), Entry: e}
}

// Get binds GET to h.
func Get(h Handler) MethodRoute { return On(http.MethodGet, Handle(h)) }

// Post binds POST to h.
func Post(h Handler) MethodRoute { return On(http.MethodPost, Handle(h)) }

// Put binds PUT to h.
func Put(h Handler) MethodRoute { return On(http.MethodPut, Handle(h)) }

// Patch binds PATCH to h.
func Patch(h Handler) MethodRoute { return On(http.MethodPatch, Handle(h)) }

// Delete binds DELETE to h.
func Delete(h Handler) MethodRoute { return On(http.MethodDelete, Handle(h)) }

// Options binds OPTIONS to h.
func Options(h Handler) MethodRoute { return On(http.MethodOptions, Handle(h)) }

// Head binds HEAD to h.
func Head(h Handler) MethodRoute { return On(http.MethodHead, Handle(h)) }

// Any binds the wildcard verb to h.
func Any(h Handler) MethodRoute { return On(MethodAll, Handle(h)) }

// MethodTable maps verbs to entries, in declaration order.
type MethodTable struct {
	routes []MethodRoute
	allow  string
}

// Methods builds a method-table entry. Problems with the table are reported
// by Entry.Validate, which the server runs at setup time.
func Methods(routes ...MethodRoute) Entry {
	t := &MethodTable{routes: routes}

	declared := make([]string, 0, len(routes))
	for _, r := range routes {
		if r.Method != MethodAll {
			declared = append(declared, r.Method)
		}
	}
	t.allow = strings.Join(declared, ", ")

	return Entry{kind: EntryTable, table: t}
}

// Allow returns the value of the Allow header: the declared verbs joined
// with ", ", wildcard excluded.
func (t *MethodTable) Allow() string { return t.allow }

// Validate reports unknown verbs, duplicate verbs, nested tables, and
// invalid entries.
func (t *MethodTable) Validate() error {
	if len(t.routes) == 0 {
		return fmt.Errorf("%w: no methods declared", ErrInvalidMethodTable)
	}
	seen := make(map[string]struct{}, len(t.routes))
	for _, r := range t.routes {
		if _, ok := knownMethods[r.Method]; !ok {
			return fmt.Errorf("%w: unknown method %q", ErrInvalidMethodTable, r.Method)
		}
		if _, dup := seen[r.Method]; dup {
			return fmt.Errorf("%w: method %q declared twice", ErrInvalidMethodTable, r.Method)
		}
		seen[r.Method] = struct{}{}

		if r.Entry.kind == EntryTable {
			return fmt.Errorf("%w: method %q: tables cannot be nested", ErrInvalidMethodTable, r.Method)
		}
		if err := r.Entry.Validate(); err != nil {
			return fmt.Errorf("%w: method %q: %v", ErrInvalidMethodTable, r.Method, err)
		}
	}
	return nil
}

// Lookup returns the entry for method: the exact verb first, then ALL.
func (t *MethodTable) Lookup(method string) (Entry, bool) {
	var wildcard *Entry
	for i := range t.routes {
		r := &t.routes[i]
		if r.Method == method {
			return r.Entry, true
		}
		if r.Method == MethodAll && wildcard == nil {
			wildcard = &r.Entry
		}
	}
	if wildcard != nil {
		return *wildcard, true
	}
	return Entry{}, false
}

// Dispatch runs the entry bound to the request verb, or answers 405.
func (t *MethodTable) Dispatch(ctx *Ctx) (any, error) {
	e, ok := t.Lookup(ctx.Method())
	if !ok {
		resp := response.Status(http.StatusMethodNotAllowed)
		resp.Header.Set("Allow", t.allow)
		return resp, nil
	}
	return Dispatch(ctx, e)
}
