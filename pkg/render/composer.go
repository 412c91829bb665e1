package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	herrors "github.com/vango-dev/hatch/internal/errors"
	"github.com/vango-dev/hatch/pkg/assets"
	"github.com/vango-dev/hatch/pkg/response"
)

// ComposerConfig configures a Composer.
type ComposerConfig struct {
	// Provider loads components for pages declared with a Ref.
	Provider Provider

	// Cache memoizes loaded components. A private cache is created when nil.
	Cache *ComponentCache

	// Layout writes the HTML document. Defaults to DefaultLayout.
	Layout Layout

	// Manifest maps entry names to built bundle files. When nil, bundle
	// names are used unfingerprinted.
	Manifest *assets.Manifest

	// AssetPrefix is the URL prefix the bundles are served under.
	// Defaults to "/assets/".
	AssetPrefix string

	// Logger receives render diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Pretty indents the bootstrap props payload.
	Pretty bool
}

// DefaultAssetPrefix is the URL prefix for client bundles.
const DefaultAssetPrefix = "/assets/"

// Composer renders registered pages into HTML responses.
type Composer struct {
	provider Provider
	cache    *ComponentCache
	layout   Layout
	assets   assets.Resolver
	manifest bool
	pretty   bool
	logger   *slog.Logger
	pages    map[string]*Page
}

// HydrationEntry is a route whose client bundle must be built.
type HydrationEntry struct {
	Route string
	Ref   ComponentRef
}

// NewComposer creates a composer with no pages.
func NewComposer(cfg ComposerConfig) *Composer {
	c := &Composer{
		provider: cfg.Provider,
		cache:    cfg.Cache,
		layout:   cfg.Layout,
		logger:   cfg.Logger,
		pretty:   cfg.Pretty,
		pages:    make(map[string]*Page),
	}
	if c.cache == nil {
		c.cache = NewComponentCache()
	}
	if c.layout == nil {
		c.layout = DefaultLayout
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	prefix := cfg.AssetPrefix
	if prefix == "" {
		prefix = DefaultAssetPrefix
	}
	if cfg.Manifest != nil {
		c.assets = assets.NewResolver(cfg.Manifest, prefix)
		c.manifest = true
	} else {
		c.assets = assets.NewPassthroughResolver(prefix)
	}
	return c
}

// Register validates page and binds it to route. Pages without a
// component (E120) and hydrated pages without a ComponentRef (E121) are
// rejected here rather than at request time.
func (c *Composer) Register(route string, page Page) error {
	if page.Component == nil && page.Ref == nil {
		return herrors.New("E120").
			WithDetailf("page %s", route).
			WithSuggestion("Set Page.Component or Page.Ref.")
	}
	if page.mayHydrate() && page.Ref == nil {
		return herrors.New("E121").
			WithDetailf("page %s", route).
			WithSuggestion("Declare the component with Page.Ref so the client bundle can import it.")
	}
	if page.Ref != nil {
		if err := page.Ref.Validate(); err != nil {
			return herrors.New("E120").WithDetailf("page %s", route).Wrap(err)
		}
		if page.Component == nil && c.provider == nil {
			return herrors.New("E120").
				WithDetailf("page %s references %s but no component provider is configured", route, page.Ref.Key())
		}
	}

	p := page
	c.pages[route] = &p
	return nil
}

// Routes returns the registered routes in sorted order.
func (c *Composer) Routes() []string {
	routes := make([]string, 0, len(c.pages))
	for route := range c.pages {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// Entries lists the pages that can hydrate, sorted by route.
func (c *Composer) Entries() []HydrationEntry {
	var entries []HydrationEntry
	for _, route := range c.Routes() {
		p := c.pages[route]
		if p.mayHydrate() {
			entries = append(entries, HydrationEntry{Route: route, Ref: *p.Ref})
		}
	}
	return entries
}

// Render renders the page registered for route.
func (c *Composer) Render(ctx context.Context, route string, r *http.Request) (*response.Response, error) {
	page, ok := c.pages[route]
	if !ok {
		return nil, fmt.Errorf("render %s: no page registered", route)
	}

	comp, err := c.component(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", route, err)
	}

	var props any
	if page.Props != nil {
		props, err = page.Props(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("render %s: props: %w", route, err)
		}
	}

	markup, err := comp.Render(ctx, props)
	if err != nil {
		err = annotateSuspense(route, err)
		if IsSuspense(err) {
			c.logger.Warn("component suspended without fallback", "route", route, "hint", suspenseHint)
			return nil, err
		}
		return nil, fmt.Errorf("render %s: %w", route, err)
	}

	doc := &Document{
		Title:  page.title(r),
		Head:   page.Head,
		Markup: markup,
	}

	stem := assets.EntryName(route)
	if page.hydrate(r) {
		if c.pretty {
			doc.Props, err = MarshalPropsIndent(props)
		} else {
			doc.Props, err = MarshalProps(props)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", route, err)
		}
		doc.Bundle = c.assets.Asset(stem + ".js")
	}
	// Without a manifest there is no way to know whether the build emitted
	// a stylesheet for the entry.
	if c.manifest && doc.Hydrated() {
		if href, ok := c.assets.Lookup(stem + ".css"); ok {
			doc.BundleStyles = append(doc.BundleStyles, href)
		}
	}

	var buf bytes.Buffer
	if err := c.layout(&buf, doc); err != nil {
		return nil, fmt.Errorf("render %s: layout: %w", route, err)
	}

	resp := response.New(http.StatusOK)
	resp.Header.Set("Content-Type", response.ContentTypeHTML)
	resp.Body = buf.Bytes()
	return resp, nil
}

func (c *Composer) component(ctx context.Context, page *Page) (Component, error) {
	if page.Component != nil {
		return page.Component, nil
	}
	return c.cache.Load(ctx, c.provider, *page.Ref)
}
