// Package common contains shared constants and sentinel errors used across
// authgate components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Request validation errors (malformed or incomplete input).
	ErrValidation = errors.New("validation error")

	// Authentication errors. ErrInvalidCredentials covers both "no such
	// user" and "wrong password" so the two are indistinguishable to the
	// caller. ErrAccountInactive is deliberately distinguishable: it is
	// not a credential-guessing vector.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")

	// Token errors. Every verification failure (expired, tampered, wrong
	// algorithm, bad audience/issuer) collapses to ErrInvalidToken.
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid or expired token")

	// Key material errors. Fatal at startup: the process must not serve
	// traffic without a valid stored key pair.
	ErrKeyMaterial = errors.New("missing or invalid key material")

	// Signing errors (key/passphrase mismatch during issuance).
	ErrSigning = errors.New("token signing error")

	ErrInternal = errors.New("internal error")
)
