// Package response turns handler return values into HTTP responses.
//
// Handlers may return a pre-built *Response, nil, a string, a number or
// bool, a binary body ([]byte or any io.Reader), or any other value,
// which is encoded as JSON. Normalize applies those rules in that priority
// order:
//
//	Normalize(nil, nil, 0)                // 204, empty body
//	Normalize("hello", nil, 0)            // 200, text/plain
//	Normalize(map[string]int{"n": 1}, nil, 0) // 200, application/json
//
// Base headers configured at the server level are applied with MergeBase,
// which never overwrites a header the handler already set.
package response
