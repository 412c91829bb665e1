package render

import (
	"fmt"
	"io"
)

// RootID is the id of the element holding the server-rendered markup. The
// client entry hydrates into it.
const RootID = "root"

// Document is everything a layout needs to write one page.
type Document struct {
	Title  string
	Head   Head
	Markup string

	// Props is the escaped bootstrap payload. Empty when the page does
	// not hydrate.
	Props string

	// Bundle is the URL of the route's client entry. Empty when the page
	// does not hydrate.
	Bundle string

	// BundleStyles are stylesheet URLs emitted by the client build for the
	// route.
	BundleStyles []string
}

// Hydrated reports whether the document carries a client bundle.
func (d *Document) Hydrated() bool {
	return d.Bundle != ""
}

// Layout writes a full HTML document.
type Layout func(w io.Writer, doc *Document) error

// docWriter keeps the first write error so the layout can write freely.
type docWriter struct {
	w   io.Writer
	err error
}

func (dw *docWriter) print(s string) {
	if dw.err != nil {
		return
	}
	_, dw.err = io.WriteString(dw.w, s)
}

func (dw *docWriter) printf(format string, args ...any) {
	if dw.err != nil {
		return
	}
	_, dw.err = fmt.Fprintf(dw.w, format, args...)
}

// DefaultLayout writes an HTML5 document: head with charset, viewport,
// title, meta, links and stylesheets; body with the root element, the
// bootstrap payload and the client bundle.
func DefaultLayout(w io.Writer, doc *Document) error {
	dw := &docWriter{w: w}

	lang := doc.Head.Lang
	if lang == "" {
		lang = "en"
	}

	dw.print("<!DOCTYPE html>\n")
	dw.printf(`<html lang="%s">`+"\n", escapeAttr(lang))
	writeHead(dw, doc)

	dw.print("<body>\n")
	dw.printf(`<div id="%s">%s</div>`+"\n", RootID, doc.Markup)

	if doc.Hydrated() {
		dw.printf(`<script id="%s" type="application/json">%s</script>`+"\n", PropsScriptID, doc.Props)
		dw.printf(`<script type="module" src="%s"></script>`+"\n", escapeAttr(doc.Bundle))
	}
	for _, script := range doc.Head.Scripts {
		if !script.Defer && !script.Async {
			writeScript(dw, script)
		}
	}

	dw.print("</body>\n</html>\n")
	return dw.err
}

func writeHead(dw *docWriter, doc *Document) {
	dw.print("<head>\n")
	dw.print(`  <meta charset="utf-8">` + "\n")
	dw.print(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")

	if doc.Title != "" {
		dw.printf("  <title>%s</title>\n", escapeHTML(doc.Title))
	}
	for _, meta := range doc.Head.Meta {
		writeMeta(dw, meta)
	}
	for _, link := range doc.Head.Links {
		writeLink(dw, link)
	}
	for _, href := range doc.Head.StyleSheets {
		dw.printf(`  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href))
	}
	for _, href := range doc.BundleStyles {
		dw.printf(`  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href))
	}
	for _, style := range doc.Head.Styles {
		dw.printf("  <style>%s</style>\n", style)
	}
	// Deferred and async scripts go in the head; the rest end the body.
	for _, script := range doc.Head.Scripts {
		if script.Defer || script.Async {
			writeScript(dw, script)
		}
	}
	dw.print("</head>\n")
}

func writeAttr(dw *docWriter, name, value string) {
	if value != "" {
		dw.printf(` %s="%s"`, name, escapeAttr(value))
	}
}

func writeMeta(dw *docWriter, meta MetaTag) {
	dw.print("  <meta")
	writeAttr(dw, "name", meta.Name)
	writeAttr(dw, "property", meta.Property)
	writeAttr(dw, "http-equiv", meta.HTTPEquiv)
	writeAttr(dw, "content", meta.Content)
	dw.print(">\n")
}

func writeLink(dw *docWriter, link LinkTag) {
	dw.print("  <link")
	writeAttr(dw, "rel", link.Rel)
	writeAttr(dw, "href", link.Href)
	writeAttr(dw, "type", link.Type)
	writeAttr(dw, "sizes", link.Sizes)
	writeAttr(dw, "crossorigin", link.CrossOrigin)
	writeAttr(dw, "media", link.Media)
	dw.print(">\n")
}

func writeScript(dw *docWriter, script ScriptTag) {
	dw.print("  <script")
	writeAttr(dw, "src", script.Src)
	if script.Module {
		dw.print(` type="module"`)
	}
	if script.Defer {
		dw.print(" defer")
	}
	if script.Async {
		dw.print(" async")
	}
	dw.print(">")
	dw.print(script.Inline)
	dw.print("</script>\n")
}
