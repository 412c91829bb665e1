package render

import (
	"context"
	"net/http"
)

// Page describes how one route is server-rendered.
type Page struct {
	// Component is an in-process root component.
	Component Component

	// Ref is a deferred root component. Required for hydration. When both
	// Component and Ref are set, Component renders on the server and Ref is
	// used by the client bundle.
	Ref *ComponentRef

	// Title is the static document title.
	Title string

	// TitleFunc derives the title from the request. It wins over Title.
	TitleFunc func(r *http.Request) string

	// Hydrate enables client hydration for every request.
	Hydrate bool

	// HydrateFunc decides hydration per request. It wins over Hydrate.
	HydrateFunc func(r *http.Request) bool

	// Props computes the component's initial props.
	Props func(ctx context.Context, r *http.Request) (any, error)

	// Head adds elements to the document head.
	Head Head
}

func (p *Page) title(r *http.Request) string {
	if p.TitleFunc != nil {
		return p.TitleFunc(r)
	}
	return p.Title
}

func (p *Page) hydrate(r *http.Request) bool {
	if p.HydrateFunc != nil {
		return p.HydrateFunc(r)
	}
	return p.Hydrate
}

// mayHydrate reports whether any request can hydrate the page.
func (p *Page) mayHydrate() bool {
	return p.Hydrate || p.HydrateFunc != nil
}

// Head holds extra document head elements.
type Head struct {
	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	Meta        []MetaTag
	Links       []LinkTag
	StyleSheets []string
	Styles      []string
	Scripts     []ScriptTag
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string // name attribute
	Content   string // content attribute
	Property  string // property attribute (for OpenGraph)
	HTTPEquiv string // http-equiv attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string // rel attribute
	Href        string // href attribute
	Type        string // type attribute
	Sizes       string // sizes attribute
	CrossOrigin string // crossorigin attribute
	Media       string // media attribute
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Module bool   // type="module"
	Defer  bool   // defer attribute
	Async  bool   // async attribute
	Inline string // inline script content, written verbatim
}
