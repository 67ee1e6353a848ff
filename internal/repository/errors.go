// Package repository defines error types that are reused across
// multiple repositories. These sentinel values let higher layers such
// as handlers distinguish between failure scenarios: a character that
// does not exist, a character owned by another account, or a store
// that cannot be reached at all. Store-transport failures always wrap
// database.ErrStoreUnavailable so callers can tell "zero rows" apart
// from "store unreachable".
package repository

import "errors"

// ErrCharacterNotFound is returned when an operation names a character
// guid that has no row in the characters store.
var ErrCharacterNotFound = errors.New("character not found")

// ErrForbidden is returned when the caller attempts an operation on a
// character owned by a different account. Handlers translate this into
// an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrProfileNotFound is returned when no launcher metadata record
// exists for an account (the account has never logged in through the
// launcher).
var ErrProfileNotFound = errors.New("launcher profile not found")
