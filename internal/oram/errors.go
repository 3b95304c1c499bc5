package oram

import "errors"

var (
	// ErrIDExists is returned by Store when the given logical ID already
	// has a live entry in the position map.
	ErrIDExists = errors.New("oram: id already exists")

	// ErrInvalidDataLength is returned by Retrieve when the plaintext
	// recovered from the server does not match the fixed data length.
	ErrInvalidDataLength = errors.New("oram: invalid data length returned by server")

	// ErrCorrupted is returned by Retrieve when the recomputed HMAC does
	// not match the tag recorded in the position map.
	ErrCorrupted = errors.New("oram: integrity tag mismatch, data was corrupted")

	// ErrBucketFull is an internal invariant violation: a bucket expected
	// to contain a dummy slot held none.
	ErrBucketFull = errors.New("oram: no dummy slot available in bucket")
)
