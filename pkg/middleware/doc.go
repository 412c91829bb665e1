// Package middleware provides net/http middleware for hatch applications.
//
// Every constructor returns a func(http.Handler) http.Handler, so the
// middleware composes with hatch.Config.Middleware and any other chain:
//
//	app, err := hatch.New(hatch.Config{
//	    Routes: routes,
//	    Middleware: []func(http.Handler) http.Handler{
//	        middleware.RequestLogger(logger),
//	        middleware.OpenTelemetry(middleware.WithTracerName("shop")),
//	        middleware.Prometheus(middleware.WithRegistry(reg)),
//	    },
//	})
//
// # Route labels
//
// Metrics and spans are labelled with the matched route pattern
// ("/users/{id}") rather than the raw path, which keeps label cardinality
// bounded. The middleware installs a route slot in the request context and
// the app fills it via SetRoute once it knows which route answered.
// Requests that match nothing are labelled RouteUnmatched.
package middleware
