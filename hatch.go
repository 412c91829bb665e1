// Package hatch is a thin layer over net/http for object-style route
// tables, static directories, and server-rendered pages that hydrate on
// the client.
//
//	app, err := hatch.New(hatch.Config{
//	    Static: []hatch.StaticConfig{{Dir: "public", MaxAge: 3600}},
//	    Routes: hatch.Routes{
//	        "/": hatch.Respond(hatch.HTML("<h1>Hello</h1>")),
//	        "/api/users/{id}": hatch.Methods(
//	            hatch.Get(func(ctx *hatch.Ctx) (any, error) {
//	                return map[string]string{"id": ctx.Param("id")}, nil
//	            }),
//	        ),
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(app.ListenAndServe(ctx, ":3000"))
//
// Handlers return any value. Strings become text/plain, numbers and
// booleans become their text form, byte slices and readers pass through,
// nil becomes 204, and everything else is encoded as JSON. A returned
// *Response is used as is.
//
// Requests are answered by the first static directory that has the file,
// then by the route table, then by Config.NotFound. Handler errors and
// panics go to Config.OnError; anything it cannot handle becomes a plain
// 500 and is logged.
package hatch

import (
	"github.com/vango-dev/hatch/pkg/render"
	"github.com/vango-dev/hatch/pkg/response"
	"github.com/vango-dev/hatch/pkg/router"
)

// Ctx is the per-request handler context.
type Ctx = router.Ctx

// Handler handles one request.
type Handler = router.Handler

// Entry is a route table value: a handler, a method table, or a response.
type Entry = router.Entry

// Routes maps URL patterns ("/users/{id}", "/files/*") to entries.
type Routes = map[string]router.Entry

// Response is a fully resolved HTTP response.
type Response = response.Response

// Page describes a server-rendered route.
type Page = render.Page

// Entry constructors.
var (
	Handle  = router.Handle
	Respond = router.Respond
	Methods = router.Methods
	On      = router.On
	Get     = router.Get
	Post    = router.Post
	Put     = router.Put
	Patch   = router.Patch
	Delete  = router.Delete
	Options = router.Options
	Head    = router.Head
	Any     = router.Any
)

// Response helpers.
var (
	Text      = response.Text
	HTML      = response.HTML
	JSON      = response.JSON
	Redirect  = response.Redirect
	Status    = response.Status
	NoContent = response.NoContent
)
