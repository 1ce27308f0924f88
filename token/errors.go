package token

import "errors"

var (
	// ErrUnauthorized is returned when a caller without minting rights
	// attempts to mint.
	ErrUnauthorized = errors.New("token: caller not authorized to mint")

	// ErrInvalidAmount is returned for nil or zero amounts on operations
	// that require a positive amount.
	ErrInvalidAmount = errors.New("token: invalid amount")

	// ErrInsufficientBalance is returned when a transfer exceeds the
	// source balance.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrInsufficientAllowance is returned when a delegated transfer
	// exceeds the spender's approved allowance.
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
)
