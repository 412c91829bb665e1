package hatch

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/hatch/pkg/render"
	"github.com/vango-dev/hatch/pkg/static"
)

// Config configures an App. Only Routes or Pages is needed to serve
// anything; every other field has a usable zero value.
type Config struct {
	// Static lists directories to serve files from. They are tried in
	// order before the route table; the first hit wins.
	Static []StaticConfig

	// Routes maps URL patterns to entries.
	Routes Routes

	// Pages maps URL patterns to server-rendered pages. A pattern may not
	// appear in both Routes and Pages.
	Pages map[string]Page

	// Render configures the page composer used for Pages.
	Render RenderConfig

	// Headers are added to every response unless the response already
	// sets the same header.
	Headers http.Header

	// NotFound handles requests nothing else matched. Non-response values
	// it returns default to status 404. If nil, a plain-text 404 is sent.
	NotFound Handler

	// OnError receives handler errors and recovered panics. A non-nil
	// result is normalized and sent (status 500 unless the result says
	// otherwise). If OnError is nil, returns nil, errors, or panics, a
	// plain-text 500 is sent.
	OnError func(ctx *Ctx, err error) (any, error)

	// Middleware wraps the app, outermost first.
	Middleware []func(http.Handler) http.Handler

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration
}

// StaticConfig configures one static directory.
//
// Dir is required and must exist when New is called. Prefix defaults to
// "/", Index to "index.html". A positive MaxAge adds
// "Cache-Control: public, max-age=<MaxAge>" to every file served.
type StaticConfig = static.Config

// RenderConfig configures server rendering for Config.Pages.
type RenderConfig = render.ComposerConfig

// DefaultShutdownTimeout is used when Config.ShutdownTimeout is zero.
const DefaultShutdownTimeout = 10 * time.Second
