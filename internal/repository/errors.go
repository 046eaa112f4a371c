// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// workflow and handlers to distinguish between different failure
// scenarios without inspecting driver error strings. For example,
// ErrAmbiguousName indicates that a directory lookup matched more than
// one person, while ErrRecoveryExhausted signals that the lifetime cap
// on QR link regenerations has been reached.
package repository

import "errors"

// ErrNotFound is returned when an equality-filtered lookup matches no
// row. Directory misses are not surfaced to users (the workflow
// defaults to the volunteer role); other callers translate this into
// an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrAmbiguousName is returned when a (first name, last name) lookup
// matches more than one directory row. The schema carries a unique
// index on the name pair, so this only fires against data imported
// before the constraint existed. Handlers translate it into an HTTP
// 409 rather than guessing which record wins.
var ErrAmbiguousName = errors.New("ambiguous name")

// ErrRecoveryExhausted is returned when a team lead has already used
// all of their QR link regenerations. The counter never resets.
var ErrRecoveryExhausted = errors.New("recovery attempts exhausted")
