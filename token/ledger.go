// Package token implements the fungible settlement-token ledger:
// per-account balances plus the approve/spend delegation pattern.
// Amounts are 256-bit unsigned integers in the smallest unit.
//
// Every operation is all-or-nothing: a failed call leaves all balances
// and allowances exactly as they were. Operations lock only the account
// entries they touch, in deterministic address order, so transfers over
// disjoint accounts proceed in parallel.
package token

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/artledger/go-artledger/identity"
)

// account holds the mutable state of one participant. Accounts are
// created implicitly on first use and never deleted.
type account struct {
	mu        sync.Mutex
	balance   uint256.Int
	allowance map[identity.Address]*uint256.Int
}

// Ledger is the fungible token ledger. The zero value is not usable;
// construct with NewLedger.
type Ledger struct {
	mu       sync.RWMutex // guards the accounts map structure only
	accounts map[identity.Address]*account

	minter identity.Address

	supplyMu sync.Mutex
	supply   uint256.Int
}

// NewLedger creates an empty ledger. Only the minter identity may mint
// new supply.
func NewLedger(minter identity.Address) *Ledger {
	return &Ledger{
		accounts: make(map[identity.Address]*account),
		minter:   minter,
	}
}

// entry returns the account for addr, creating it on first use.
func (l *Ledger) entry(addr identity.Address) *account {
	l.mu.RLock()
	acct, ok := l.accounts[addr]
	l.mu.RUnlock()
	if ok {
		return acct
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if acct, ok = l.accounts[addr]; ok {
		return acct
	}
	acct = &account{allowance: make(map[identity.Address]*uint256.Int)}
	l.accounts[addr] = acct
	return acct
}

// lockPair locks the entries for a and b in deterministic address
// order and returns them alongside the unlock function. Ordered
// acquisition keeps concurrent transfers over overlapping accounts
// deadlock-free.
func (l *Ledger) lockPair(a, b identity.Address) (*account, *account, func()) {
	if a == b {
		acct := l.entry(a)
		acct.mu.Lock()
		return acct, acct, acct.mu.Unlock
	}
	aa, ba := l.entry(a), l.entry(b)
	first, second := aa, ba
	if b.Less(a) {
		first, second = ba, aa
	}
	first.mu.Lock()
	second.mu.Lock()
	return aa, ba, func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

func positive(amount *uint256.Int) bool {
	return amount != nil && !amount.IsZero()
}

// Mint increases to's balance by amount. Only the ledger's minter
// identity may mint.
func (l *Ledger) Mint(caller, to identity.Address, amount *uint256.Int) error {
	if caller != l.minter {
		return ErrUnauthorized
	}
	if !positive(amount) {
		return ErrInvalidAmount
	}

	acct := l.entry(to)
	acct.mu.Lock()
	acct.balance.Add(&acct.balance, amount)
	acct.mu.Unlock()

	l.supplyMu.Lock()
	l.supply.Add(&l.supply, amount)
	l.supplyMu.Unlock()
	return nil
}

// Transfer moves amount from one account to another. A self-transfer
// with sufficient balance succeeds without effect.
func (l *Ledger) Transfer(from, to identity.Address, amount *uint256.Int) error {
	if !positive(amount) {
		return ErrInvalidAmount
	}

	src, dst, unlock := l.lockPair(from, to)
	defer unlock()

	if src.balance.Lt(amount) {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	src.balance.Sub(&src.balance, amount)
	dst.balance.Add(&dst.balance, amount)
	return nil
}

// Approve sets (overwrites) the allowance from owner to spender. A nil
// amount is treated as zero; approving zero revokes the allowance.
func (l *Ledger) Approve(owner, spender identity.Address, amount *uint256.Int) error {
	acct := l.entry(owner)
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if amount == nil || amount.IsZero() {
		delete(acct.allowance, spender)
		return nil
	}
	acct.allowance[spender] = new(uint256.Int).Set(amount)
	return nil
}

// IncreaseAllowance adds amount to the allowance from owner to spender.
func (l *Ledger) IncreaseAllowance(owner, spender identity.Address, amount *uint256.Int) error {
	if !positive(amount) {
		return ErrInvalidAmount
	}
	acct := l.entry(owner)
	acct.mu.Lock()
	defer acct.mu.Unlock()
	cur, ok := acct.allowance[spender]
	if !ok {
		cur = new(uint256.Int)
		acct.allowance[spender] = cur
	}
	cur.Add(cur, amount)
	return nil
}

// TransferFrom moves amount out of owner's balance on the authority of
// a prior approval to spender. The allowance is decremented by amount,
// not reset, so a partial spend leaves the remainder spendable. Both
// checks pass before anything mutates.
func (l *Ledger) TransferFrom(spender, owner, to identity.Address, amount *uint256.Int) error {
	if !positive(amount) {
		return ErrInvalidAmount
	}

	src, dst, unlock := l.lockPair(owner, to)
	defer unlock()

	allowed, ok := src.allowance[spender]
	if !ok || allowed.Lt(amount) {
		return ErrInsufficientAllowance
	}
	if src.balance.Lt(amount) {
		return ErrInsufficientBalance
	}

	allowed.Sub(allowed, amount)
	if owner == to {
		return nil
	}
	src.balance.Sub(&src.balance, amount)
	dst.balance.Add(&dst.balance, amount)
	return nil
}

// BalanceOf returns a copy of the account balance. Unknown accounts
// report zero.
func (l *Ledger) BalanceOf(addr identity.Address) *uint256.Int {
	l.mu.RLock()
	acct, ok := l.accounts[addr]
	l.mu.RUnlock()
	if !ok {
		return new(uint256.Int)
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return new(uint256.Int).Set(&acct.balance)
}

// Allowance returns a copy of the amount spender may move out of
// owner's balance.
func (l *Ledger) Allowance(owner, spender identity.Address) *uint256.Int {
	l.mu.RLock()
	acct, ok := l.accounts[owner]
	l.mu.RUnlock()
	if !ok {
		return new(uint256.Int)
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if allowed, ok := acct.allowance[spender]; ok {
		return new(uint256.Int).Set(allowed)
	}
	return new(uint256.Int)
}

// TotalSupply returns the sum of all minted tokens. Every operation
// except Mint conserves this sum.
func (l *Ledger) TotalSupply() *uint256.Int {
	l.supplyMu.Lock()
	defer l.supplyMu.Unlock()
	return new(uint256.Int).Set(&l.supply)
}

// Minter returns the identity authorized to mint.
func (l *Ledger) Minter() identity.Address {
	return l.minter
}
