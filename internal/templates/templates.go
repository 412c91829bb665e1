package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/hatch/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// ModulePath is the Go module path.
	ModulePath string

	// Description is a short project description.
	Description string

	// HasTailwind enables Tailwind CSS.
	HasTailwind bool

	// PackageManager runs the project's JS scripts.
	PackageManager string

	// HatchVersion is required in the generated go.mod.
	HatchVersion string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string

	// TailwindFiles are added when Config.HasTailwind is set.
	TailwindFiles map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"full":    fullTemplate(),
	"api":     apiTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E221").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: " + strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasClient reports whether the template ships JS dependencies that must
// be installed with a package manager.
func (t *Template) HasClient() bool {
	_, ok := t.Files["package.json"]
	return ok
}

// Paths returns the files Create writes for cfg, sorted.
func (t *Template) Paths(cfg Config) []string {
	paths := make([]string, 0, len(t.Files)+len(t.TailwindFiles))
	for p := range t.Files {
		paths = append(paths, p)
	}
	if cfg.HasTailwind {
		for p := range t.TailwindFiles {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// Create generates a project from the template.
func (t *Template) Create(dir string, cfg Config) error {
	for _, relPath := range t.Paths(cfg) {
		content, ok := t.Files[relPath]
		if !ok {
			content = t.TailwindFiles[relPath]
		}

		tmpl, err := template.New(relPath).Delims("[[", "]]").Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}
