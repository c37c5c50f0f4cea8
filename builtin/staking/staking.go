// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking moves collectibles in and out of custody.
package staking

import (
	"github.com/stakebox/stakebox/builtin/authority"
	"github.com/stakebox/stakebox/builtin/custody"
	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
)

// Settler pays the rewards a record accrued up to now and advances its
// LastRedeemTime and TotalEarned. It does not persist the record.
type Settler interface {
	Settle(rec *Record, now uint64) (uint64, error)
}

// Staking is the stake state machine.
type Staking struct {
	store   *Store
	tokens  token.Service
	custody custody.Service
	auth    *authority.Authorities
	settler Settler
}

func New(store *Store, tokens token.Service, custody custody.Service, auth *authority.Authorities, settler Settler) *Staking {
	return &Staking{
		store:   store,
		tokens:  tokens,
		custody: custody,
		auth:    auth,
		settler: settler,
	}
}

// Get returns the record of owner for asset. It fails with ErrNotInitialized
// if the asset was never staked by owner.
func (s *Staking) Get(owner, asset ledger.Address) (*Record, error) {
	rec, err := s.store.Get(owner, asset)
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.Initialized || rec.Owner != owner {
		return nil, reverts.ErrNotInitialized
	}
	return rec, nil
}

// collectible returns the mint and edition of the asset held in account.
func (s *Staking) collectible(account ledger.Address) (mint, edition ledger.Address, err error) {
	acc, err := s.tokens.Account(account)
	if err != nil {
		return
	}
	m, err := s.tokens.Mint(acc.Mint)
	if err != nil {
		return
	}
	return acc.Mint, m.Edition, nil
}

// Stake delegates one unit of asset to the custody authority, freezes it
// and marks the record staked.
func (s *Staking) Stake(owner, asset ledger.Address, now uint64) (*Record, error) {
	rec, err := s.store.Get(owner, asset)
	if err != nil {
		return nil, err
	}
	if rec != nil && rec.IsStaked() {
		return nil, reverts.ErrAlreadyStaked
	}
	mint, edition, err := s.collectible(asset)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.ApproveDelegate(asset, s.auth.Custody(), owner, 1); err != nil {
		return nil, err
	}
	if err := s.custody.Freeze(s.auth.Custody(), asset, edition, mint); err != nil {
		return nil, err
	}

	if rec == nil {
		rec = &Record{CustodyAsset: asset, Owner: owner}
	}
	rec.Status = StatusStaked
	rec.StakeStartTime = now
	if now > rec.LastRedeemTime {
		rec.LastRedeemTime = now
	}
	rec.Initialized = true
	if err := s.store.Set(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Unstake thaws asset, revokes the custody delegation and pays the rewards
// accrued since the last redeem. It returns the amount paid.
func (s *Staking) Unstake(owner, asset ledger.Address, now uint64) (*Record, uint64, error) {
	rec, err := s.Get(owner, asset)
	if err != nil {
		return nil, 0, err
	}
	if rec.Status != StatusStaked {
		return nil, 0, reverts.ErrNotStaked
	}
	mint, edition, err := s.collectible(asset)
	if err != nil {
		return nil, 0, err
	}

	if err := s.custody.Thaw(s.auth.Custody(), asset, edition, mint); err != nil {
		return nil, 0, err
	}
	if err := s.tokens.RevokeDelegate(asset, owner); err != nil {
		return nil, 0, err
	}
	paid, err := s.settler.Settle(rec, now)
	if err != nil {
		return nil, 0, err
	}

	rec.Status = StatusUnstaked
	if err := s.store.Set(rec); err != nil {
		return nil, 0, err
	}
	return rec, paid, nil
}
