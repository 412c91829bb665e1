package render

import (
	"errors"
	"strings"

	herrors "github.com/vango-dev/hatch/internal/errors"
)

// Messages UI libraries use when a component suspends during a
// synchronous server render with no fallback boundary.
var suspenseMessages = []string{
	"suspended while responding to synchronous input",
	"A component suspended",
}

const suspenseHint = "Wrap the suspending component in a boundary with a fallback, " +
	"or load its data in Page.Props so the server render does not suspend."

// SuspenseError reports a component that suspended during a server render
// without a fallback. It wraps the renderer's error.
type SuspenseError struct {
	Route string
	Err   error
}

func (e *SuspenseError) Error() string {
	return "render " + e.Route + ": " + e.Err.Error() + " (hint: " + suspenseHint + ")"
}

func (e *SuspenseError) Unwrap() error { return e.Err }

// Hint returns the remediation hint.
func (e *SuspenseError) Hint() string { return suspenseHint }

// HatchError returns the E131 form of the error for CLI output.
func (e *SuspenseError) HatchError() *herrors.HatchError {
	return herrors.New("E131").
		WithDetailf("route %s: %v", e.Route, e.Err).
		WithSuggestion(suspenseHint)
}

// IsSuspense reports whether err is a suspend-without-fallback error from
// the UI library, matched by message.
func IsSuspense(err error) bool {
	if err == nil {
		return false
	}
	var se *SuspenseError
	if errors.As(err, &se) {
		return true
	}
	msg := err.Error()
	for _, m := range suspenseMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// annotateSuspense wraps suspension errors in a SuspenseError and returns
// other errors unchanged.
func annotateSuspense(route string, err error) error {
	if err == nil || !IsSuspense(err) {
		return err
	}
	var se *SuspenseError
	if errors.As(err, &se) {
		return err
	}
	return &SuspenseError{Route: route, Err: err}
}
