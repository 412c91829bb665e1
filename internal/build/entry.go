package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/hatch/internal/config"
	"github.com/vango-dev/hatch/pkg/assets"
	"github.com/vango-dev/hatch/pkg/render"
)

// Entry is a hydrated route whose client bundle must be built.
type Entry struct {
	// Route is the page's route pattern.
	Route string

	// Module is the component's module path, relative to the project
	// directory or a bare package specifier.
	Module string

	// Export is the named export. Empty means the default export.
	Export string
}

// Name returns the entry's file stem.
func (e Entry) Name() string {
	return EntryName(e.Route)
}

// EntryName returns the stable file stem for a route.
func EntryName(route string) string {
	return assets.EntryName(route)
}

// EntriesFromConfig returns an entry per hydrated page in cfg, sorted by
// route.
func EntriesFromConfig(cfg *config.Config) []Entry {
	routes := cfg.HydratedRoutes()
	sort.Strings(routes)

	entries := make([]Entry, 0, len(routes))
	for _, route := range routes {
		p := cfg.Pages[route]
		entries = append(entries, Entry{Route: route, Module: p.Module, Export: p.Export})
	}
	return entries
}

// EntriesFromComposer converts a composer's hydration list.
func EntriesFromComposer(list []render.HydrationEntry) []Entry {
	entries := make([]Entry, 0, len(list))
	for _, h := range list {
		entries = append(entries, Entry{Route: h.Route, Module: h.Ref.Module, Export: h.Ref.Export})
	}
	return entries
}

// entrySource renders the generated entry module.
//
// dir is the directory the entry is written to and projectDir the
// directory relative module paths are resolved against.
func entrySource(e Entry, dir, projectDir, hydrateImport string, globals []string) string {
	var b strings.Builder

	b.WriteString("// Code generated by hatch build. DO NOT EDIT.\n")
	fmt.Fprintf(&b, "// Route: %s\n\n", e.Route)
	b.WriteString("import { createElement } from \"react\";\n")
	fmt.Fprintf(&b, "import { createRoot, hydrateRoot } from %s;\n", strconv.Quote(hydrateImport))
	for _, g := range globals {
		fmt.Fprintf(&b, "import %s;\n", strconv.Quote(importPath(g, dir, projectDir)))
	}

	module := strconv.Quote(importPath(e.Module, dir, projectDir))
	if e.Export == "" || e.Export == render.DefaultExport {
		fmt.Fprintf(&b, "import Component from %s;\n", module)
	} else {
		fmt.Fprintf(&b, "import { %s as Component } from %s;\n", e.Export, module)
	}

	fmt.Fprintf(&b, `
const payload = document.getElementById(%s);
const props = payload ? JSON.parse(payload.textContent || "{}") : {};
const root = document.getElementById(%s);
const app = createElement(Component, props);

if (root.hasChildNodes()) {
  hydrateRoot(root, app);
} else {
  createRoot(root).render(app);
}
`, strconv.Quote(render.PropsScriptID), strconv.Quote(render.RootID))

	return b.String()
}

// importPath rewrites a project-relative path so it resolves from dir.
// Bare specifiers are returned unchanged.
func importPath(specifier, dir, projectDir string) string {
	if !strings.HasPrefix(specifier, ".") && !filepath.IsAbs(specifier) {
		return specifier
	}
	target := specifier
	if !filepath.IsAbs(target) {
		target = filepath.Join(projectDir, specifier)
	}
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

// writeEntries writes one entry module per entry into dir and returns
// the written paths keyed by entry stem.
func writeEntries(entries []Entry, dir, projectDir, hydrateImport string, globals []string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make(map[string]string, len(entries))
	routes := make(map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if prev, ok := routes[name]; ok {
			return nil, fmt.Errorf("routes %q and %q map to the same entry name %q", prev, e.Route, name)
		}
		routes[name] = e.Route
		path := filepath.Join(dir, name+".jsx")
		if err := os.WriteFile(path, []byte(entrySource(e, dir, projectDir, hydrateImport, globals)), 0644); err != nil {
			return nil, err
		}
		paths[name] = path
	}
	return paths, nil
}
