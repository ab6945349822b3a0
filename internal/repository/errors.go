// Package repository contains the MySQL data access layer: registered
// accounts, refresh tokens and the ledger journal.  Sentinel errors let
// handlers translate failures without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when registration collides with an existing
// account email. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrAccountNotFound is returned when no account matches the lookup.
// Handlers translate this into HTTP 401 on login and 404 elsewhere.
var ErrAccountNotFound = errors.New("account not found")
