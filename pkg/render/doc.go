// Package render composes server-rendered pages for component-based UIs.
//
// The UI library itself is not part of this package. It is reached through
// the Component interface, so any renderer that can turn props into markup
// (a JS runtime bridge, html/template, a Go component library) can back a
// page.
//
// # Pages
//
// A Page names its root component either directly or through a
// ComponentRef, a deferred module+export reference that a Provider loads
// on first use. Only pages with a ComponentRef can hydrate, because the
// client bundle imports the component by that reference:
//
//	composer := render.NewComposer(render.ComposerConfig{
//	    Provider: registry,
//	    Cache:    render.NewComponentCache(),
//	    Manifest: manifest,
//	})
//	err := composer.Register("/", render.Page{
//	    Ref:     &render.ComponentRef{Module: "./pages/Home.jsx"},
//	    Title:   "Home",
//	    Hydrate: true,
//	    Props: func(ctx context.Context, r *http.Request) (any, error) {
//	        return map[string]any{"user": "ada"}, nil
//	    },
//	})
//
// # Bootstrap payload
//
// Props of hydrated pages are embedded as JSON in
//
//	<script id="__HATCH_PROPS__" type="application/json">...</script>
//
// with <, >, &, U+2028 and U+2029 escaped so the payload can never close
// the script element early. The generated client entry reads the payload
// back before calling hydrate.
package render
