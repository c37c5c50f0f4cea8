// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is a state backed implementation of the ledger token program.
package token

import (
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/ledger"
)

var (
	slotMints    = ledger.BytesToBytes32([]byte("token-mints"))
	slotAccounts = ledger.BytesToBytes32([]byte("token-accounts"))
)

// Native keeps mints and token accounts in the storage of the token program.
type Native struct {
	mints    *slot.Mapping[ledger.Address, *Mint]
	accounts *slot.Mapping[ledger.Address, *Account]
}

var _ Service = (*Native)(nil)

// New binds the token program to sctx.
func New(sctx *slot.Context) *Native {
	return &Native{
		mints:    slot.NewMapping[ledger.Address, *Mint](sctx, slotMints),
		accounts: slot.NewMapping[ledger.Address, *Account](sctx, slotAccounts),
	}
}

// CreateMint registers a new mint. Collectibles get an edition account.
func (n *Native) CreateMint(ref, authority ledger.Address, decimals uint8, collectible bool) (*Mint, error) {
	existing, err := n.mints.Get(ref)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get mint")
	}
	if existing != nil {
		return nil, errors.Errorf("mint %v already exists", ref)
	}
	mint := &Mint{Authority: authority, Decimals: decimals}
	if collectible {
		mint.Edition = EditionAddress(ref)
	}
	if err := n.mints.Set(ref, mint); err != nil {
		return nil, errors.Wrap(err, "failed to set mint")
	}
	return mint, nil
}

func (n *Native) Mint(ref ledger.Address) (*Mint, error) {
	mint, err := n.mints.Get(ref)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get mint")
	}
	if mint == nil {
		return nil, reverts.ErrAccountNotFound
	}
	return mint, nil
}

func (n *Native) Account(ref ledger.Address) (*Account, error) {
	acc, err := n.accounts.Get(ref)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token account")
	}
	if acc == nil {
		return nil, reverts.ErrAccountNotFound
	}
	return acc, nil
}

func (n *Native) setAccount(ref ledger.Address, acc *Account) error {
	if err := n.accounts.Set(ref, acc); err != nil {
		return errors.Wrap(err, "failed to set token account")
	}
	return nil
}

// ownedAccount loads an account that owner must own and that must not be frozen.
func (n *Native) ownedAccount(ref, owner ledger.Address) (*Account, error) {
	acc, err := n.Account(ref)
	if err != nil {
		return nil, err
	}
	if acc.Owner != owner {
		return nil, reverts.ErrOwnerMismatch
	}
	if acc.Frozen {
		return nil, reverts.ErrAccountFrozen
	}
	return acc, nil
}

func (n *Native) AssociatedAccount(owner, mint ledger.Address) ledger.Address {
	return AssociatedAccount(owner, mint)
}

func (n *Native) EnsureAssociatedAccount(owner, mint ledger.Address) (ledger.Address, error) {
	ref := AssociatedAccount(owner, mint)
	acc, err := n.accounts.Get(ref)
	if err != nil {
		return ledger.Address{}, errors.Wrap(err, "failed to get token account")
	}
	if acc != nil {
		return ref, nil
	}
	if _, err := n.Mint(mint); err != nil {
		return ledger.Address{}, err
	}
	if err := n.setAccount(ref, &Account{Mint: mint, Owner: owner}); err != nil {
		return ledger.Address{}, err
	}
	return ref, nil
}

func (n *Native) ApproveDelegate(account, delegate, owner ledger.Address, amount uint64) error {
	acc, err := n.ownedAccount(account, owner)
	if err != nil {
		return err
	}
	if amount > acc.Amount {
		return reverts.ErrInsufficientFunds
	}
	acc.Delegate = delegate
	acc.DelegatedAmount = amount
	return n.setAccount(account, acc)
}

func (n *Native) RevokeDelegate(account, owner ledger.Address) error {
	acc, err := n.ownedAccount(account, owner)
	if err != nil {
		return err
	}
	acc.Delegate = ledger.Address{}
	acc.DelegatedAmount = 0
	return n.setAccount(account, acc)
}

func (n *Native) MintTo(mint, dest, authority ledger.Address, amount uint64) error {
	m, err := n.Mint(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority {
		return reverts.ErrInvalidMintAuthority
	}
	acc, err := n.Account(dest)
	if err != nil {
		return err
	}
	if acc.Mint != mint {
		return reverts.ErrMintMismatch
	}
	if acc.Frozen {
		return reverts.ErrAccountFrozen
	}
	sum := acc.Amount + amount
	if sum < acc.Amount {
		return reverts.ErrArithmeticOverflow
	}
	acc.Amount = sum
	return n.setAccount(dest, acc)
}

func (n *Native) BurnFrom(account, mint, owner ledger.Address, amount uint64) error {
	acc, err := n.ownedAccount(account, owner)
	if err != nil {
		return err
	}
	if acc.Mint != mint {
		return reverts.ErrMintMismatch
	}
	if acc.Amount < amount {
		return reverts.ErrInsufficientFunds
	}
	acc.Amount -= amount
	if acc.DelegatedAmount > acc.Amount {
		acc.DelegatedAmount = acc.Amount
	}
	return n.setAccount(account, acc)
}

// Transfer moves amount between two accounts of the same mint.
func (n *Native) Transfer(from, to, owner ledger.Address, amount uint64) error {
	src, err := n.ownedAccount(from, owner)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}
	dst, err := n.Account(to)
	if err != nil {
		return err
	}
	if dst.Mint != src.Mint {
		return reverts.ErrMintMismatch
	}
	if dst.Frozen {
		return reverts.ErrAccountFrozen
	}
	if src.Amount < amount {
		return reverts.ErrInsufficientFunds
	}
	if dst.Amount+amount < dst.Amount {
		return reverts.ErrArithmeticOverflow
	}
	src.Amount -= amount
	if src.DelegatedAmount > src.Amount {
		src.DelegatedAmount = src.Amount
	}
	dst.Amount += amount
	if err := n.setAccount(from, src); err != nil {
		return err
	}
	return n.setAccount(to, dst)
}

// SetFrozen freezes or thaws an account. Only the custody program calls it,
// after checking its own preconditions.
func (n *Native) SetFrozen(ref ledger.Address, frozen bool) error {
	acc, err := n.Account(ref)
	if err != nil {
		return err
	}
	acc.Frozen = frozen
	return n.setAccount(ref, acc)
}
