package hatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/justinas/alice"
	"go.uber.org/multierr"

	herrors "github.com/vango-dev/hatch/internal/errors"
	"github.com/vango-dev/hatch/pkg/middleware"
	"github.com/vango-dev/hatch/pkg/render"
	"github.com/vango-dev/hatch/pkg/response"
	"github.com/vango-dev/hatch/pkg/router"
	"github.com/vango-dev/hatch/pkg/static"
)

// App serves a route table, static directories, and rendered pages.
// It implements http.Handler.
type App struct {
	statics  []*static.Handler
	router   *router.Router
	composer *render.Composer
	headers  http.Header
	notFound Handler
	onError  func(ctx *Ctx, err error) (any, error)
	logger   *slog.Logger
	handler  http.Handler
	config   Config
}

// New validates cfg and builds an App. Every configuration problem is
// reported, combined into one error.
func New(cfg Config) (*App, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	a := &App{
		headers:  canonicalHeaders(cfg.Headers),
		notFound: cfg.NotFound,
		onError:  cfg.OnError,
		logger:   cfg.Logger,
		config:   cfg,
	}

	var errs error

	for i, sc := range cfg.Static {
		h, err := static.NewHandler(sc)
		if err != nil {
			errs = multierr.Append(errs, herrors.New("E112").
				WithDetailf("static[%d] dir %q", i, sc.Dir).
				Wrap(err))
			continue
		}
		a.statics = append(a.statics, h)
	}

	routes := make(map[string]router.Entry, len(cfg.Routes)+len(cfg.Pages))
	for pattern, entry := range cfg.Routes {
		routes[pattern] = entry
	}

	if len(cfg.Pages) > 0 {
		rc := cfg.Render
		if rc.Logger == nil {
			rc.Logger = cfg.Logger
		}
		a.composer = render.NewComposer(rc)

		for _, pattern := range sortedKeys(cfg.Pages) {
			if _, dup := cfg.Routes[pattern]; dup {
				errs = multierr.Append(errs, herrors.New("E111").
					WithDetailf("route %q is declared in both Routes and Pages", pattern))
				continue
			}
			if err := a.composer.Register(pattern, cfg.Pages[pattern]); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			routes[pattern] = a.pageEntry(pattern)
		}
	}

	rt, err := router.New(routes)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			code := "E111"
			if errors.Is(e, router.ErrInvalidMethodTable) {
				code = "E110"
			}
			errs = multierr.Append(errs, herrors.New(code).Wrap(e))
		}
	}
	if errs != nil {
		return nil, errs
	}
	a.router = rt

	chain := make([]alice.Constructor, 0, len(cfg.Middleware))
	for _, mw := range cfg.Middleware {
		chain = append(chain, mw)
	}
	a.handler = alice.New(chain...).ThenFunc(a.serve)
	return a, nil
}

// pageEntry serves a registered page for GET and HEAD. Path parameters
// are exposed to Page.Props through r.PathValue.
func (a *App) pageEntry(pattern string) router.Entry {
	h := func(ctx *Ctx) (any, error) {
		for name, value := range ctx.Params {
			ctx.Request.SetPathValue(name, value)
		}
		return a.composer.Render(ctx.Context(), pattern, ctx.Request)
	}
	return router.Methods(router.Get(h), router.Head(h))
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// Handler returns the app wrapped in its middleware chain. It is the same
// handler ServeHTTP delegates to.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Composer returns the page composer, or nil when no pages are configured.
func (a *App) Composer() *render.Composer {
	return a.composer
}

// Config returns the configuration the app was built from, with defaults
// applied.
func (a *App) Config() Config {
	return a.config
}

func (a *App) serve(w http.ResponseWriter, r *http.Request) {
	ctx := router.NewCtx(r, a)

	resp := a.respond(ctx)
	resp.MergeBase(a.headers)

	if err := resp.WriteTo(w, r); err != nil {
		a.logger.Debug("write response failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", ctx.ID,
		)
	}
}

// respond runs the request through static directories, the route table and
// the not-found handler, in that order.
func (a *App) respond(ctx *Ctx) *response.Response {
	r := ctx.Request

	for _, h := range a.statics {
		resp, err := h.Serve(r)
		if err == nil {
			middleware.SetRoute(r.Context(), h.Resolver().Prefix()+"*")
			return resp
		}
		if !errors.Is(err, static.ErrNotHandled) && !errors.Is(err, static.ErrNotFound) {
			return a.handleError(ctx, err)
		}
	}

	if m, ok := a.router.Match(r); ok {
		ctx.Pattern = m.Pattern
		ctx.Params = m.Params
		middleware.SetRoute(r.Context(), m.Pattern)

		v, err := invoke(ctx, func(ctx *Ctx) (any, error) {
			return router.Dispatch(ctx, m.Entry)
		})
		return a.finish(ctx, v, err, 0)
	}

	if a.notFound != nil {
		v, err := invoke(ctx, a.notFound)
		return a.finish(ctx, v, err, http.StatusNotFound)
	}
	return plainStatus(http.StatusNotFound)
}

// finish normalizes a handler result, sending failures to the error
// boundary. status is the default for non-response values; 0 lets
// Normalize choose between 200 and 204.
func (a *App) finish(ctx *Ctx, v any, err error, status int) *response.Response {
	if err != nil {
		return a.handleError(ctx, err)
	}
	if ctx.Status != 0 {
		status = ctx.Status
	}
	resp, err := response.Normalize(v, ctx.Header, status)
	if err != nil {
		return a.handleError(ctx, err)
	}
	return resp
}

// handleError is the error boundary. OnError gets one attempt; anything
// it cannot turn into a response becomes a plain 500.
func (a *App) handleError(ctx *Ctx, err error) *response.Response {
	if a.onError == nil {
		a.logError(ctx, "unhandled request error", err)
		return plainStatus(http.StatusInternalServerError)
	}

	// The failed handler's status and headers do not apply to the error
	// response.
	ctx.Status = 0
	ctx.Header = make(http.Header)

	v, hookErr := invoke(ctx, func(ctx *Ctx) (any, error) {
		return a.onError(ctx, err)
	})
	if hookErr != nil {
		a.logError(ctx, "error handler failed", err, "handler_error", hookErr)
		return plainStatus(http.StatusInternalServerError)
	}
	if v == nil {
		a.logError(ctx, "error handler returned no response", err)
		return plainStatus(http.StatusInternalServerError)
	}

	status := http.StatusInternalServerError
	if ctx.Status != 0 {
		status = ctx.Status
	}
	resp, nerr := response.Normalize(v, ctx.Header, status)
	if nerr != nil {
		a.logError(ctx, "error handler result not encodable", err, "handler_error", nerr)
		return plainStatus(http.StatusInternalServerError)
	}
	return resp
}

func (a *App) logError(ctx *Ctx, msg string, err error, extra ...any) {
	args := []any{
		"error", err,
		"method", ctx.Method(),
		"path", ctx.Path(),
		"request_id", ctx.ID,
	}
	if ctx.Pattern != "" {
		args = append(args, "route", ctx.Pattern)
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		args = append(args, "stack", string(pe.Stack))
	}
	args = append(args, extra...)
	a.logger.ErrorContext(ctx.Context(), msg, args...)
}

func plainStatus(code int) *response.Response {
	resp := response.Text(http.StatusText(code))
	resp.Status = code
	return resp
}

func canonicalHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		out[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ListenAndServe serves the app on addr until ctx is cancelled, then shuts
// down gracefully within Config.ShutdownTimeout.
func (a *App) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:     addr,
		Handler:  a,
		ErrorLog: slog.NewLogLogger(a.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	a.logger.Info("server shutting down", "addr", addr)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
