// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody freezes delegated collectibles in place so the owner keeps
// them while they cannot be moved.
package custody

import (
	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
)

// Service is the custody program as used by the staking program.
type Service interface {
	Freeze(authority, account, edition, mint ledger.Address) error
	Thaw(authority, account, edition, mint ledger.Address) error
}

// Native implements Service over the native token program.
type Native struct {
	tokens *token.Native
}

var _ Service = (*Native)(nil)

func New(tokens *token.Native) *Native {
	return &Native{tokens: tokens}
}

// check loads the asset account and verifies the authority may act on it.
func (n *Native) check(authority, account, edition, mint ledger.Address) (*token.Account, error) {
	acc, err := n.tokens.Account(account)
	if err != nil {
		return nil, err
	}
	if acc.Mint != mint {
		return nil, reverts.ErrMintMismatch
	}
	m, err := n.tokens.Mint(mint)
	if err != nil {
		return nil, err
	}
	if m.Edition.IsZero() || m.Edition != edition {
		return nil, reverts.ErrMintMismatch
	}
	if !acc.IsDelegatedTo(authority) {
		return nil, reverts.ErrInvalidDelegate
	}
	return acc, nil
}

// Freeze freezes account. authority must be its delegate.
func (n *Native) Freeze(authority, account, edition, mint ledger.Address) error {
	acc, err := n.check(authority, account, edition, mint)
	if err != nil {
		return err
	}
	if acc.Frozen {
		return reverts.ErrAccountFrozen
	}
	return n.tokens.SetFrozen(account, true)
}

// Thaw unfreezes account. authority must be its delegate.
func (n *Native) Thaw(authority, account, edition, mint ledger.Address) error {
	acc, err := n.check(authority, account, edition, mint)
	if err != nil {
		return err
	}
	if !acc.Frozen {
		return reverts.ErrAccountNotFrozen
	}
	return n.tokens.SetFrozen(account, false)
}
