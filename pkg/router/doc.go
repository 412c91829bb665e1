// Package router holds the route table model and the method dispatcher.
//
// A route table maps URL patterns to an Entry, a tagged union holding one
// of: a Handler, a MethodTable, or a pre-built response. Pattern matching
// is delegated to chi; this package only decides which entry a matched
// request runs and with which verb.
//
//	routes := map[string]router.Entry{
//	    "/":          router.Respond(response.HTML("<h1>Hello</h1>")),
//	    "/users/{id}": router.Methods(
//	        router.Get(showUser),
//	        router.Delete(deleteUser),
//	    ),
//	    "/health":    router.Handle(func(ctx *router.Ctx) (any, error) { return "ok", nil }),
//	}
//
// A request whose verb is not in a method table (and which has no ALL
// entry) gets a 405 with an Allow header listing the declared verbs in
// declaration order.
package router
