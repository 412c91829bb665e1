// Package errors provides structured, actionable error messages for hatch.
//
// Every error carries a code (e.g. "E110") that maps to a registered
// template with a short message, a longer explanation, and a documentation
// link. Call sites add the specifics:
//
//	err := errors.New("E110").
//	    WithDetail(`route "/users" declares unknown method "FETCH"`).
//	    WithSuggestion("Use GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD or ALL")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E110: Invalid method table
//	//
//	//   route "/users" declares unknown method "FETCH"
//	//
//	//   Hint: Use GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD or ALL
//	//
//	//   Learn more: https://hatch.vango.dev/docs/errors/E110
//
// # Error Categories
//
//   - config: setup-time problems (route tables, pages, hatch.json)
//   - render: server rendering failures
//   - build: client bundling and publishing failures
//   - cli: scaffolding and command-line usage problems
package errors
