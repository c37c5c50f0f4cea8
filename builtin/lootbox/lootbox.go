// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lootbox burns reward credits for a prize drawn from the catalog.
package lootbox

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/holiman/uint256"

	"github.com/stakebox/stakebox/builtin/authority"
	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/staking"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
)

// MinTier is the cheapest box. Valid tiers double from there: 10, 20, 40, ...
const MinTier uint64 = 10

// ValidateTier accepts only tiers on the doubling ladder.
func ValidateTier(tier uint64) error {
	points := MinTier
	for points < tier {
		if points > math.MaxUint64/2 {
			return reverts.ErrInvalidLootboxTier
		}
		points *= 2
	}
	if points != tier {
		return reverts.ErrInvalidLootboxTier
	}
	return nil
}

// Requester asks the oracle for fresh randomness on behalf of owner.
type Requester interface {
	// Bound fails unless owner has a request account to ask on.
	Bound(owner ledger.Address) error
	RequestRandomness(owner ledger.Address, seed ledger.Bytes32) error
}

type Lootbox struct {
	params    *params.Params
	pointers  *Store
	records   *staking.Store
	tokens    token.Service
	auth      *authority.Authorities
	requester Requester
}

// New creates the lootbox engine. requester is only used in deferred mode.
func New(
	params *params.Params,
	pointers *Store,
	records *staking.Store,
	tokens token.Service,
	auth *authority.Authorities,
	requester Requester,
) *Lootbox {
	return &Lootbox{
		params:    params,
		pointers:  pointers,
		records:   records,
		tokens:    tokens,
		auth:      auth,
		requester: requester,
	}
}

// Pointer returns the lootbox of owner.
func (l *Lootbox) Pointer(owner ledger.Address) (*Pointer, error) {
	return l.pointers.Get(owner)
}

// BurnAmount returns the reward units burned by a box of tier.
func (l *Lootbox) BurnAmount(tier uint64) (uint64, error) {
	unit, ok := l.params.TierUnit()
	if !ok {
		return 0, reverts.ErrArithmeticOverflow
	}
	amount, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(tier), uint256.NewInt(unit))
	if overflow || !amount.IsUint64() {
		return 0, reverts.ErrArithmeticOverflow
	}
	return amount.Uint64(), nil
}

func seed(owner, asset ledger.Address, tier, now uint64) ledger.Bytes32 {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], tier)
	binary.BigEndian.PutUint64(b[8:], now)
	return ledger.Blake2b(owner.Bytes(), asset.Bytes(), b[:])
}

// Open burns the price of tier and arms a new box for owner. The staked
// asset's lifetime earnings must cover the price.
func (l *Lootbox) Open(owner, asset ledger.Address, tier, now uint64) (*Pointer, error) {
	p, err := l.pointers.Get(owner)
	if err != nil {
		return nil, err
	}
	if p.IsPending() {
		return nil, reverts.ErrLootboxAlreadyClaimed
	}
	if err := ValidateTier(tier); err != nil {
		return nil, err
	}
	burn, err := l.BurnAmount(tier)
	if err != nil {
		return nil, err
	}
	rec, err := l.records.Get(owner, asset)
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.Initialized || rec.Owner != owner {
		return nil, reverts.ErrNotInitialized
	}
	if rec.TotalEarned < burn {
		return nil, reverts.ErrInvalidLootboxTier
	}
	if l.params.Mode == params.ModeDeferred {
		if l.requester == nil {
			return nil, reverts.ErrInvalidOracleAccount
		}
		if err := l.requester.Bound(owner); err != nil {
			return nil, err
		}
	}

	account := l.tokens.AssociatedAccount(owner, l.params.RewardMint)
	if err := l.tokens.BurnFrom(account, l.params.RewardMint, owner, burn); err != nil {
		if errors.Is(err, reverts.ErrInsufficientFunds) || errors.Is(err, reverts.ErrAccountNotFound) {
			return nil, reverts.ErrInsufficientBurnBalance
		}
		return nil, err
	}

	switch l.params.Mode {
	case params.ModeDeferred:
		p = &Pointer{IsInitialized: true}
		if err := l.requester.RequestRandomness(owner, seed(owner, asset, tier, now)); err != nil {
			return nil, err
		}
	default:
		p = &Pointer{
			PrizeAsset:    l.params.Prize(now),
			IsInitialized: true,
			Redeemable:    true,
		}
	}
	if err := l.pointers.Set(owner, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Resolve sets the prize of the pending box of owner from a random index.
func (l *Lootbox) Resolve(owner ledger.Address, index uint64) (*Pointer, error) {
	p, err := l.pointers.Get(owner)
	if err != nil {
		return nil, err
	}
	if !p.IsInitialized {
		return nil, reverts.ErrLootboxNotInitialized
	}
	if p.IsClaimed {
		return nil, reverts.ErrLootboxAlreadyClaimed
	}
	p.PrizeAsset = l.params.Prize(index)
	p.Redeemable = true
	if err := l.pointers.Set(owner, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Claim mints one unit of the prize of the pending box to owner.
func (l *Lootbox) Claim(owner ledger.Address) (*Pointer, error) {
	p, err := l.pointers.Get(owner)
	if err != nil {
		return nil, err
	}
	if !p.IsInitialized {
		return nil, reverts.ErrLootboxNotInitialized
	}
	if p.IsClaimed {
		return nil, reverts.ErrLootboxAlreadyClaimed
	}
	if !p.Redeemable {
		return nil, reverts.ErrLootboxNotRedeemable
	}

	dest, err := l.tokens.EnsureAssociatedAccount(owner, p.PrizeAsset)
	if err != nil {
		return nil, err
	}
	if err := l.tokens.MintTo(p.PrizeAsset, dest, l.auth.Mint(), 1); err != nil {
		return nil, err
	}

	p.IsClaimed = true
	p.Redeemable = false
	if err := l.pointers.Set(owner, p); err != nil {
		return nil, err
	}
	return p, nil
}
