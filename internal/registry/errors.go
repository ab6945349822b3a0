// Package registry implements the on-ledger ticket/event state machine: an
// organizer authorization set, an event catalog and a ticket registry with
// mint/transfer/use/burn transitions.  Every operation takes the state and an
// explicit call context (caller principal, ledger height); nothing is read
// from ambient environment, which keeps the core deterministic and unit
// testable without a real ledger.
package registry

import "fmt"

// Error is the tagged failure value returned by registry operations.  The
// numeric codes are part of the API surface so that journal consumers and
// API clients see stable identifiers across releases.
type Error struct {
	Code uint64
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s (u%d)", e.Msg, e.Code) }

// Sentinel failures.  Handlers compare with errors.Is and map each to an
// HTTP status; the registry never returns any other error value.
var (
	ErrNotOwner           = &Error{100, "sender is not the token owner"}
	ErrTokenNotFound      = &Error{101, "token not found"}
	ErrEventNotFound      = &Error{102, "event not found"}
	ErrEventAlreadyExists = &Error{103, "event id already exists"}
	ErrTransferRestricted = &Error{104, "transfer restricted"}
	ErrSoldOut            = &Error{105, "event sold out"}
	ErrEventNotStarted    = &Error{106, "event has not started"}
	ErrAlreadyUsed        = &Error{107, "ticket already used"}
	ErrUnauthorized       = &Error{108, "unauthorized"}
	ErrInvalidParameters  = &Error{109, "invalid parameters"}
)
