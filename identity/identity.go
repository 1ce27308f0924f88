// Package identity defines the participant identifier used throughout
// the ledger. An Address is an opaque fixed-length identifier supplied
// by an external authentication layer; the ledger never derives or
// verifies addresses itself.
package identity

import (
	"encoding/hex"
	"errors"
	"strings"
)

// AddressLength is the size of an address in bytes.
const AddressLength = 20

var ErrInvalidAddress = errors.New("identity: invalid address")

// Address is a fixed-length participant identifier, comparable and
// usable as a map key. The zero value is the null sentinel.
type Address [AddressLength]byte

// Zero is the null address sentinel.
var Zero Address

// ParseAddress parses a hex-encoded address, with or without the "0x"
// prefix.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != AddressLength*2 {
		return a, ErrInvalidAddress
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, ErrInvalidAddress
	}
	copy(a[:], b)
	return a, nil
}

// MustAddress parses a hex-encoded address and panics on failure.
// Intended for fixtures and package-level constants.
func MustAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero reports whether the address is the null sentinel.
func (a Address) IsZero() bool {
	return a == Zero
}

// String returns the 0x-prefixed hex encoding.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Short returns an abbreviated form for display, e.g. "0x1234…abcd".
func (a Address) Short() string {
	s := a.String()
	return s[:6] + "…" + s[len(s)-4:]
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Less reports whether a orders before b bytewise. Composite operations
// use this to acquire per-account locks in a deterministic order.
func (a Address) Less(b Address) bool {
	for i := 0; i < AddressLength; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
