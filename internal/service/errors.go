package service

import "errors"

var (
	// ErrUnauthorized means the caller's credential is missing or matches
	// no team. No transaction query runs after this is raised.
	ErrUnauthorized = errors.New("unknown team credential")

	// ErrStoreUnavailable means the backing store could not serve a read or
	// write, including deadline expiry.
	ErrStoreUnavailable = errors.New("transaction store unavailable")

	// ErrClaimContention means the claim attempt bound was exhausted while
	// pending candidates remained. The caller should retry.
	ErrClaimContention = errors.New("pending transaction claim contention")
)
