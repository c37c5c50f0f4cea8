// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/stakebox/stakebox/ledger"
)

// Mint describes a token kind.
type Mint struct {
	Authority ledger.Address // the only signer allowed to mint
	Decimals  uint8
	Edition   ledger.Address // edition account for collectibles, zero for fungible tokens
}

// Account is a balance of one mint held by one owner.
type Account struct {
	Mint            ledger.Address
	Owner           ledger.Address
	Amount          uint64
	Delegate        ledger.Address
	DelegatedAmount uint64
	Frozen          bool
}

// IsDelegatedTo reports whether delegate may act on at least one unit of the account.
func (a *Account) IsDelegatedTo(delegate ledger.Address) bool {
	return a.Delegate == delegate && a.DelegatedAmount > 0
}

// Service is the ledger token program as used by the staking program.
type Service interface {
	// AssociatedAccount returns the canonical account of owner for mint.
	AssociatedAccount(owner, mint ledger.Address) ledger.Address
	// EnsureAssociatedAccount creates the associated account if absent.
	EnsureAssociatedAccount(owner, mint ledger.Address) (ledger.Address, error)
	Account(ref ledger.Address) (*Account, error)
	Mint(ref ledger.Address) (*Mint, error)
	ApproveDelegate(account, delegate, owner ledger.Address, amount uint64) error
	RevokeDelegate(account, owner ledger.Address) error
	MintTo(mint, dest, authority ledger.Address, amount uint64) error
	BurnFrom(account, mint, owner ledger.Address, amount uint64) error
}

var associatedSeed = []byte("associated")

// AssociatedAccount derives the canonical account of owner for mint.
func AssociatedAccount(owner, mint ledger.Address) ledger.Address {
	return ledger.DeriveAddress(ledger.TokenProgram, associatedSeed, owner.Bytes(), mint.Bytes())
}

var editionSeed = []byte("edition")

// EditionAddress derives the edition account of a collectible mint.
func EditionAddress(mint ledger.Address) ledger.Address {
	return ledger.DeriveAddress(ledger.MetadataProgram, editionSeed, mint.Bytes())
}
