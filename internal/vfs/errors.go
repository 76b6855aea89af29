package vfs

import "errors"

var (
	// ErrNotFound is returned for any operation addressing a file that was
	// never created, or whose descriptor carries the deleted flag.
	ErrNotFound = errors.New("vfs: file not found")

	// ErrIO wraps a failure from the underlying store client: a failed get,
	// a failed batch write, a failed row listing.
	ErrIO = errors.New("vfs: store I/O error")

	// ErrMalformedDescriptor is returned when a descriptor column's payload
	// cannot be decoded, or cannot be re-encoded before a write.
	ErrMalformedDescriptor = errors.New("vfs: malformed descriptor")
)
