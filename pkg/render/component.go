package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"

	herrors "github.com/vango-dev/hatch/internal/errors"
)

// Component renders a page's root component to markup.
type Component interface {
	Render(ctx context.Context, props any) (string, error)
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(ctx context.Context, props any) (string, error)

// Render calls f.
func (f ComponentFunc) Render(ctx context.Context, props any) (string, error) {
	return f(ctx, props)
}

type templateComponent struct {
	tmpl *template.Template
	name string
}

// Template adapts a named html/template to Component. Props become the
// template's data. An empty name executes tmpl itself.
func Template(tmpl *template.Template, name string) Component {
	return &templateComponent{tmpl: tmpl, name: name}
}

func (c *templateComponent) Render(_ context.Context, props any) (string, error) {
	var buf bytes.Buffer
	var err error
	if c.name == "" {
		err = c.tmpl.Execute(&buf, props)
	} else {
		err = c.tmpl.ExecuteTemplate(&buf, c.name, props)
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DefaultExport is the export used when a ComponentRef leaves Export empty.
const DefaultExport = "default"

// ComponentRef is a deferred reference to a component: a module path plus
// an export name. It is also what the client entry imports.
type ComponentRef struct {
	Module string
	Export string
}

// ExportName returns Export, or DefaultExport when empty.
func (r ComponentRef) ExportName() string {
	if r.Export == "" {
		return DefaultExport
	}
	return r.Export
}

// Key identifies the reference in caches and registries: "Module#Export".
func (r ComponentRef) Key() string {
	return r.Module + "#" + r.ExportName()
}

// String returns Key.
func (r ComponentRef) String() string { return r.Key() }

// Validate reports a reference without a module path.
func (r ComponentRef) Validate() error {
	if strings.TrimSpace(r.Module) == "" {
		return fmt.Errorf("component reference has no module path")
	}
	return nil
}

// Provider loads the component behind a reference.
type Provider interface {
	Load(ctx context.Context, ref ComponentRef) (Component, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, ref ComponentRef) (Component, error)

// Load calls f.
func (f ProviderFunc) Load(ctx context.Context, ref ComponentRef) (Component, error) {
	return f(ctx, ref)
}

// Registry is a Provider over components registered ahead of time.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]Component)}
}

// Register makes c loadable under ref, replacing any previous component.
func (r *Registry) Register(ref ComponentRef, c Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[ref.Key()] = c
}

// Load returns the component registered under ref, or an E130 error.
func (r *Registry) Load(_ context.Context, ref ComponentRef) (Component, error) {
	r.mu.RLock()
	c, ok := r.components[ref.Key()]
	r.mu.RUnlock()
	if !ok {
		return nil, herrors.New("E130").
			WithDetailf("no component registered for %s", ref.Key()).
			WithSuggestion("Register the component with Registry.Register before serving the page.")
	}
	return c, nil
}

// TemplateFiles returns a Provider that renders a reference with the
// html/template file next to its module: "./src/Home.jsx" loads
// dir/src/Home.html. A named export executes the template defined under
// that name. References without a template file render no markup, so
// the client mounts the component itself.
func TemplateFiles(dir string) Provider {
	return ProviderFunc(func(_ context.Context, ref ComponentRef) (Component, error) {
		module := filepath.FromSlash(ref.Module)
		path := filepath.Join(dir, strings.TrimSuffix(module, filepath.Ext(module))+".html")

		if _, err := os.Stat(path); os.IsNotExist(err) {
			return ComponentFunc(func(context.Context, any) (string, error) { return "", nil }), nil
		}
		tmpl, err := template.ParseFiles(path)
		if err != nil {
			return nil, herrors.New("E130").WithDetailf("template for %s", ref.Key()).Wrap(err)
		}

		name := ""
		if ref.ExportName() != DefaultExport {
			name = ref.Export
		}
		return Template(tmpl, name), nil
	})
}
