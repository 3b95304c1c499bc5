package pki

import "errors"

var (
	// ErrInvalidSignature is returned when a certificate's or object's
	// signature fails cryptographic verification.
	ErrInvalidSignature = errors.New("pki: invalid signature")

	// ErrRevoked is returned when a certificate (or a self-revoked CA)
	// appears on the relevant revocation list.
	ErrRevoked = errors.New("pki: certificate revoked")

	// ErrNotYetValid is returned when the current time precedes a
	// certificate's validity window.
	ErrNotYetValid = errors.New("pki: certificate not yet valid")

	// ErrExpired is returned when the current time is past a
	// certificate's validity window.
	ErrExpired = errors.New("pki: certificate expired")

	// ErrUntrustedRoot is returned when the chain terminates at a
	// certificate outside the relying party's trusted root set.
	ErrUntrustedRoot = errors.New("pki: chain terminates at untrusted root")
)
