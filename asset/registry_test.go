package asset

import (
	"errors"
	"testing"

	"github.com/artledger/go-artledger/identity"
)

var (
	alice = identity.MustAddress("0x0000000000000000000000000000000000000a11")
	bob   = identity.MustAddress("0x0000000000000000000000000000000000000b0b")
)

func TestMint(t *testing.T) {
	t.Run("IdentifiersStartAtOneAndIncrease", func(t *testing.T) {
		r := NewRegistry()
		for want := uint64(1); want <= 3; want++ {
			id, err := r.Mint(alice, "ipfs://content")
			if err != nil {
				t.Fatalf("mint failed: %v", err)
			}
			if id != want {
				t.Errorf("mint returned id %d, want %d", id, want)
			}
		}
		if got := r.Count(); got != 3 {
			t.Errorf("count = %d, want 3", got)
		}
	})

	t.Run("DuplicateContentRefsPermitted", func(t *testing.T) {
		r := NewRegistry()
		if _, err := r.Mint(alice, "ipfs://same"); err != nil {
			t.Fatalf("first mint failed: %v", err)
		}
		if _, err := r.Mint(bob, "ipfs://same"); err != nil {
			t.Errorf("duplicate content ref should be permitted: %v", err)
		}
	})

	t.Run("ZeroOwnerRejected", func(t *testing.T) {
		r := NewRegistry()
		if _, err := r.Mint(identity.Zero, "ipfs://x"); !errors.Is(err, ErrInvalidOwner) {
			t.Errorf("expected ErrInvalidOwner, got %v", err)
		}
		if r.Count() != 0 {
			t.Error("failed mint advanced the counter")
		}
	})

	t.Run("RecordsMinter", func(t *testing.T) {
		r := NewRegistry()
		id, _ := r.Mint(alice, "ipfs://x")
		r.TransferOwnership(id, alice, bob)
		m, err := r.MinterOf(id)
		if err != nil {
			t.Fatalf("minterOf failed: %v", err)
		}
		if m != alice {
			t.Errorf("minter = %s, want %s (immutable)", m, alice)
		}
	})
}

func TestTransferOwnership(t *testing.T) {
	t.Run("Reassigns", func(t *testing.T) {
		r := NewRegistry()
		id, _ := r.Mint(alice, "ipfs://x")
		if err := r.TransferOwnership(id, alice, bob); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
		owner, err := r.OwnerOf(id)
		if err != nil {
			t.Fatalf("ownerOf failed: %v", err)
		}
		if owner != bob {
			t.Errorf("owner = %s, want %s", owner, bob)
		}
	})

	t.Run("NotOwner", func(t *testing.T) {
		r := NewRegistry()
		id, _ := r.Mint(alice, "ipfs://x")
		if err := r.TransferOwnership(id, bob, bob); !errors.Is(err, ErrNotOwner) {
			t.Errorf("expected ErrNotOwner, got %v", err)
		}
		owner, _ := r.OwnerOf(id)
		if owner != alice {
			t.Error("failed transfer changed owner")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		r := NewRegistry()
		if err := r.TransferOwnership(42, alice, bob); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := r.TransferOwnership(0, alice, bob); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound for id 0, got %v", err)
		}
	})

	t.Run("ZeroTargetRejected", func(t *testing.T) {
		r := NewRegistry()
		id, _ := r.Mint(alice, "ipfs://x")
		if err := r.TransferOwnership(id, alice, identity.Zero); !errors.Is(err, ErrInvalidOwner) {
			t.Errorf("expected ErrInvalidOwner, got %v", err)
		}
	})
}

func TestOwnerOfUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.OwnerOf(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	id, _ := r.Mint(alice, "ipfs://x")
	a, err := r.Get(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if a.ID != id || a.Owner != alice || a.Minter != alice || a.ContentRef != "ipfs://x" {
		t.Errorf("unexpected snapshot: %+v", a)
	}
}
