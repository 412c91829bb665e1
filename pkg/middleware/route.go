package middleware

import (
	"context"
	"net/http"
)

// RouteUnmatched labels requests that no route or static directory served.
const RouteUnmatched = "unmatched"

type routeKey struct{}

type routeSlot struct {
	pattern string
}

// withRouteSlot returns r with a route slot, reusing one installed by an
// outer middleware.
func withRouteSlot(r *http.Request) (*http.Request, *routeSlot) {
	if slot, ok := r.Context().Value(routeKey{}).(*routeSlot); ok {
		return r, slot
	}
	slot := &routeSlot{}
	return r.WithContext(context.WithValue(r.Context(), routeKey{}, slot)), slot
}

// SetRoute records the route pattern that served the request. It is a
// no-op when no middleware installed a route slot.
func SetRoute(ctx context.Context, pattern string) {
	if slot, ok := ctx.Value(routeKey{}).(*routeSlot); ok {
		slot.pattern = pattern
	}
}

// Route returns the recorded route pattern, or "".
func Route(ctx context.Context) string {
	if slot, ok := ctx.Value(routeKey{}).(*routeSlot); ok {
		return slot.pattern
	}
	return ""
}

func (s *routeSlot) label() string {
	if s.pattern == "" {
		return RouteUnmatched
	}
	return s.pattern
}
