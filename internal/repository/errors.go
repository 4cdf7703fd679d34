// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound covers lookups of records that do not exist or
// are not visible to the requesting user, while ErrForbidden indicates
// an attempt to modify a record the user does not own (master records
// are read-only for everyone).
package repository

import "errors"

// ErrNotFound is returned when a record does not exist or is outside
// the caller's visibility scope. Handlers should translate this into
// an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// record they do not own, such as deleting a master aircraft. Handlers
// should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
