package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/hatch"
	"github.com/vango-dev/hatch/internal/build"
	"github.com/vango-dev/hatch/internal/config"
	"github.com/vango-dev/hatch/pkg/assets"
	"github.com/vango-dev/hatch/pkg/middleware"
	"github.com/vango-dev/hatch/pkg/render"
)

// assetMaxAge is the Cache-Control max-age for fingerprinted bundles.
const assetMaxAge = 31536000

type serveOptions struct {
	port        int
	host        string
	metricsPath string
	verbose     bool
}

func serveCmd() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project",
		Long: `Serve the project's static directories, pages and client bundles.

Pages declared in hatch.json are rendered from the html/template file next
to each page module (src/Home.jsx renders src/Home.html) and hydrate with
the bundles from the last 'hatch build'.

Examples:
  hatch serve
  hatch serve --port=8080 --host=0.0.0.0
  hatch serve --metrics=/metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = opts.host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			app, err := newServeApp(cfg, logger, opts.metricsPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success("Serving %s at %s", cfg.Dir(), cfg.URL())
			return app.ListenAndServe(ctx, cfg.Address())
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", config.DefaultPort, "Port to listen on (default from hatch.json)")
	cmd.Flags().StringVar(&opts.host, "host", config.DefaultHost, "Host to bind (default from hatch.json)")
	cmd.Flags().StringVar(&opts.metricsPath, "metrics", "", "Expose Prometheus metrics at this path")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	return cmd
}

// newServeApp builds the app `hatch serve` runs for cfg.
func newServeApp(cfg *config.Config, logger *slog.Logger, metricsPath string) (*hatch.App, error) {
	var static []hatch.StaticConfig
	for _, s := range cfg.Static {
		static = append(static, hatch.StaticConfig{
			Dir:    cfg.Abs(s.Dir),
			Prefix: s.Prefix,
			Index:  s.Index,
			MaxAge: s.MaxAge,
		})
	}

	manifest, err := assets.Load(filepath.Join(cfg.OutputPath(), assets.ManifestFile))
	if err != nil {
		logger.Warn("no client build found, pages will not hydrate", "error", err)
	} else {
		static = append(static, hatch.StaticConfig{
			Dir:    filepath.Join(cfg.OutputPath(), build.AssetsDir),
			Prefix: cfg.Build.AssetPrefix,
			MaxAge: assetMaxAge,
		})
	}

	headers := make(http.Header, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	pages := make(map[string]hatch.Page, len(cfg.Pages))
	for route, p := range cfg.Pages {
		pages[route] = hatch.Page{
			Ref:     &render.ComponentRef{Module: p.Module, Export: p.Export},
			Title:   p.Title,
			Hydrate: p.Hydrate && manifest != nil,
		}
	}

	var mw []func(http.Handler) http.Handler
	var metrics *middleware.Metrics
	if metricsPath != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = middleware.NewMetrics(middleware.WithRegistry(registry))
		mw = append(mw, mountAt(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}
	mw = append(mw,
		middleware.RequestLogger(logger),
		middleware.OpenTelemetry(middleware.WithTracerName("hatch-serve")),
	)
	if metrics != nil {
		mw = append(mw, metrics.Handler)
	}

	return hatch.New(hatch.Config{
		Static:     static,
		Pages:      pages,
		Headers:    headers,
		Middleware: mw,
		Logger:     logger,
		Render: hatch.RenderConfig{
			Provider:    render.TemplateFiles(cfg.Dir()),
			Manifest:    manifest,
			AssetPrefix: cfg.Build.AssetPrefix,
			Logger:      logger,
		},
	})
}

// mountAt answers requests for path with h and passes the rest on.
func mountAt(path string, h http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == path {
				h.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
