// Package directory implements the registry of participant profiles.
// Profiles are created exactly once per identity via Register, mutated
// only through UpdateProfile, and never deleted.
package directory

import (
	"errors"
	"sync"

	"github.com/artledger/go-artledger/identity"
)

var (
	// ErrAlreadyRegistered is returned when an identity registers twice.
	ErrAlreadyRegistered = errors.New("directory: already registered")

	// ErrNotRegistered is returned when an identity has no profile.
	ErrNotRegistered = errors.New("directory: not registered")

	// ErrInvalidIdentity is returned for the zero address.
	ErrInvalidIdentity = errors.New("directory: zero address identity")
)

// Profile holds the informational record of one participant. The
// owning-identity check on updates is the caller-identity contract of
// the layer above; the directory itself only keys records.
type Profile struct {
	Name       string
	AvatarRef  string
	Bio        string
	Registered bool
}

// Directory holds all participant profiles.
type Directory struct {
	mu       sync.RWMutex
	profiles map[identity.Address]Profile
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{profiles: make(map[identity.Address]Profile)}
}

// Register creates the profile for id. Fails with ErrAlreadyRegistered
// if one exists.
func (d *Directory) Register(id identity.Address, name, avatarRef, bio string) error {
	if id.IsZero() {
		return ErrInvalidIdentity
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.profiles[id]; ok {
		return ErrAlreadyRegistered
	}
	d.profiles[id] = Profile{Name: name, AvatarRef: avatarRef, Bio: bio, Registered: true}
	return nil
}

// UpdateProfile overwrites the mutable fields of an existing profile.
func (d *Directory) UpdateProfile(id identity.Address, name, avatarRef, bio string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.profiles[id]; !ok {
		return ErrNotRegistered
	}
	d.profiles[id] = Profile{Name: name, AvatarRef: avatarRef, Bio: bio, Registered: true}
	return nil
}

// IsRegistered reports whether id has a profile.
func (d *Directory) IsRegistered(id identity.Address) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.profiles[id]
	return ok
}

// Profile returns a copy of the profile for id.
func (d *Directory) Profile(id identity.Address) (Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.profiles[id]
	if !ok {
		return Profile{}, ErrNotRegistered
	}
	return p, nil
}
