// Package static resolves URL paths to files under a fixed root directory
// and serves them.
//
// Resolution never escapes the root: ".." segments pop the accumulated
// path and can never climb above it, and the final candidate is checked
// again for lexical containment. Misses are soft failures (ErrNotHandled,
// ErrNotFound) so the caller can fall through to dynamic routes.
package static
