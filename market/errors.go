package market

import "errors"

var (
	// ErrInvalidInput is returned for malformed or out-of-range
	// arguments: empty titles, missing prices on for-sale listings.
	ErrInvalidInput = errors.New("market: invalid input")

	// ErrNotFound is returned for an unknown listing identifier.
	ErrNotFound = errors.New("market: listing not found")

	// ErrAlreadyUnlisted is returned when buying a listing that is not
	// for sale.
	ErrAlreadyUnlisted = errors.New("market: listing not for sale")

	// ErrSelfPurchase is returned when a seller attempts to buy their
	// own listing.
	ErrSelfPurchase = errors.New("market: cannot buy own listing")

	// ErrContention is returned when a mutating operation could not
	// acquire its record within the bounded retry budget. Safe to
	// retry.
	ErrContention = errors.New("market: record contention, retry")

	// ErrCorruptState signals an internal consistency violation. It is
	// not user-recoverable; the enclosing operation aborted with no
	// net effect and the condition should be treated as fatal.
	ErrCorruptState = errors.New("market: internal state corruption")
)
