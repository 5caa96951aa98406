// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across storage/service layers.
var (
	// ErrNotFound indicates the requested entity or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials indicates no account matches the supplied email/password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPendingApproval indicates the account exists but awaits admin approval.
	ErrPendingApproval = errors.New("account pending admin approval")

	// ErrEmailExists indicates a uniqueness violation on the account email.
	ErrEmailExists = errors.New("email already exists")

	// ErrStorageUnavailable indicates the persistence medium failed a read or write.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
