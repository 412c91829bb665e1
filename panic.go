package hatch

import (
	"fmt"
	"runtime/debug"
)

// PanicError is what OnError receives when a handler panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// invoke calls h, converting a panic into a *PanicError.
func invoke(ctx *Ctx, h Handler) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return h(ctx)
}
