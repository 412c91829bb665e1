package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Server is the handle to the running server exposed to handlers.
type Server interface {
	// Logger returns the server's structured logger.
	Logger() *slog.Logger
}

// Ctx is the per-request context passed to handlers. It lives for exactly
// one request.
type Ctx struct {
	// ID is a unique identifier for the request.
	ID string

	// Request is the raw inbound request.
	Request *http.Request

	// URL is the parsed request URL.
	URL *url.URL

	// Params holds path parameters captured by the matched pattern.
	Params map[string]string

	// Pattern is the route pattern that matched, if any.
	Pattern string

	// Server is the handle of the server handling the request.
	Server Server

	// Locals is handler-scoped state, empty at the start of every request.
	Locals map[string]any

	// Header holds response headers set explicitly by the handler. They are
	// applied to whatever the handler returns.
	Header http.Header

	// Status overrides the default status of non-response return values.
	Status int
}

// NewCtx creates the context for one request.
func NewCtx(r *http.Request, server Server) *Ctx {
	return &Ctx{
		ID:      uuid.NewString(),
		Request: r,
		URL:     r.URL,
		Params:  map[string]string{},
		Server:  server,
		Locals:  map[string]any{},
		Header:  make(http.Header),
	}
}

// Context returns the request's context.Context.
func (c *Ctx) Context() context.Context {
	return c.Request.Context()
}

// Method returns the request method.
func (c *Ctx) Method() string {
	return c.Request.Method
}

// Path returns the request path.
func (c *Ctx) Path() string {
	return c.URL.Path
}

// Param returns a path parameter, or "" if absent.
func (c *Ctx) Param(name string) string {
	return c.Params[name]
}

// Query returns the first value of a query parameter.
func (c *Ctx) Query(name string) string {
	return c.URL.Query().Get(name)
}

// SetHeader sets a response header.
func (c *Ctx) SetHeader(key, value string) {
	c.Header.Set(key, value)
}

// SetStatus sets the response status for non-response return values.
func (c *Ctx) SetStatus(code int) {
	c.Status = code
}

// Logger returns the server logger annotated with the request id, or
// slog.Default() when the context has no server.
func (c *Ctx) Logger() *slog.Logger {
	logger := slog.Default()
	if c.Server != nil {
		if l := c.Server.Logger(); l != nil {
			logger = l
		}
	}
	return logger.With("request_id", c.ID)
}
