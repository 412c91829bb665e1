package router

import (
	"errors"
	"fmt"

	"github.com/vango-dev/hatch/pkg/response"
)

// Handler handles a request. Its result is normalized by package response;
// a returned error goes to the server's error boundary.
type Handler func(ctx *Ctx) (any, error)

// EntryKind identifies which variant an Entry holds.
type EntryKind int

const (
	// EntryInvalid is the zero Entry.
	EntryInvalid EntryKind = iota
	// EntryHandler runs a Handler for every verb.
	EntryHandler
	// EntryTable dispatches on the request verb.
	EntryTable
	// EntryResponse answers every verb with a pre-built response.
	EntryResponse
)

// String returns the kind name.
func (k EntryKind) String() string {
	switch k {
	case EntryHandler:
		return "handler"
	case EntryTable:
		return "method table"
	case EntryResponse:
		return "response"
	default:
		return "invalid"
	}
}

// Entry is the value stored for a route pattern. Build it with Handle,
// Methods, or Respond.
type Entry struct {
	kind     EntryKind
	handler  Handler
	table    *MethodTable
	response *response.Response
}

// Handle returns an entry that runs h for every verb.
func Handle(h Handler) Entry {
	return Entry{kind: EntryHandler, handler: h}
}

// Respond returns an entry that answers with a copy of resp. Its body
// should be a []byte so it can be replayed for every request.
func Respond(resp *response.Response) Entry {
	return Entry{kind: EntryResponse, response: resp}
}

// Kind returns the entry's variant.
func (e Entry) Kind() EntryKind { return e.kind }

// Table returns the method table of an EntryTable entry.
func (e Entry) Table() *MethodTable { return e.table }

var (
	// ErrInvalidEntry marks malformed route entries.
	ErrInvalidEntry = errors.New("invalid route entry")

	// ErrInvalidMethodTable marks malformed method tables.
	ErrInvalidMethodTable = errors.New("invalid method table")

	errEmptyEntry = fmt.Errorf("%w: empty entry", ErrInvalidEntry)
)

// Validate reports configuration errors in the entry.
func (e Entry) Validate() error {
	switch e.kind {
	case EntryHandler:
		if e.handler == nil {
			return fmt.Errorf("%w: nil handler", ErrInvalidEntry)
		}
		return nil
	case EntryResponse:
		if e.response == nil {
			return fmt.Errorf("%w: nil response", ErrInvalidEntry)
		}
		return nil
	case EntryTable:
		if e.table == nil {
			return fmt.Errorf("%w: nil table", ErrInvalidMethodTable)
		}
		return e.table.Validate()
	default:
		return errEmptyEntry
	}
}

// Dispatch runs the entry for ctx and returns the handler result, ready
// for response.Normalize.
func Dispatch(ctx *Ctx, e Entry) (any, error) {
	switch e.kind {
	case EntryHandler:
		return e.handler(ctx)
	case EntryResponse:
		return e.response.Clone(), nil
	case EntryTable:
		return e.table.Dispatch(ctx)
	default:
		return nil, errEmptyEntry
	}
}
