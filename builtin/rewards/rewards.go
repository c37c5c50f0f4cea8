// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards accrues and pays reward credits to staked collectibles.
package rewards

import (
	"github.com/holiman/uint256"

	"github.com/stakebox/stakebox/builtin/authority"
	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/staking"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
)

var secondsPerDay = uint256.NewInt(ledger.SecondsPerDay)

// Accrue computes the reward rec earned between its last redeem and now,
// floor(elapsed * ratePerDay / 86400), and the resulting total.
func Accrue(rec *staking.Record, now, ratePerDay uint64) (reward, total uint64, err error) {
	if now <= rec.LastRedeemTime {
		return 0, rec.TotalEarned, nil
	}
	elapsed := now - rec.LastRedeemTime

	amount := new(uint256.Int).Mul(uint256.NewInt(elapsed), uint256.NewInt(ratePerDay))
	amount.Div(amount, secondsPerDay)
	if !amount.IsUint64() {
		return 0, 0, reverts.ErrArithmeticOverflow
	}
	reward = amount.Uint64()

	sum, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(rec.TotalEarned), amount)
	if overflow || !sum.IsUint64() {
		return 0, 0, reverts.ErrArithmeticOverflow
	}
	return reward, sum.Uint64(), nil
}

// Rewards pays accrued rewards into the owner's associated reward account.
type Rewards struct {
	params *params.Params
	store  *staking.Store
	tokens token.Service
	auth   *authority.Authorities
}

var _ staking.Settler = (*Rewards)(nil)

func New(params *params.Params, store *staking.Store, tokens token.Service, auth *authority.Authorities) *Rewards {
	return &Rewards{
		params: params,
		store:  store,
		tokens: tokens,
		auth:   auth,
	}
}

// Settle mints the reward accrued by rec up to now and advances the record.
// Nothing is minted when the reward is zero.
func (r *Rewards) Settle(rec *staking.Record, now uint64) (uint64, error) {
	reward, total, err := Accrue(rec, now, r.params.RatePerDay)
	if err != nil {
		return 0, err
	}
	if reward > 0 {
		dest, err := r.tokens.EnsureAssociatedAccount(rec.Owner, r.params.RewardMint)
		if err != nil {
			return 0, err
		}
		if err := r.tokens.MintTo(r.params.RewardMint, dest, r.auth.Mint(), reward); err != nil {
			return 0, err
		}
	}
	if now > rec.LastRedeemTime {
		rec.LastRedeemTime = now
	}
	rec.TotalEarned = total
	return reward, nil
}

// Redeem pays the rewards accrued by the staked asset of owner without
// unstaking it.
func (r *Rewards) Redeem(owner, asset ledger.Address, now uint64) (*staking.Record, uint64, error) {
	rec, err := r.store.Get(owner, asset)
	if err != nil {
		return nil, 0, err
	}
	if rec == nil || !rec.Initialized || rec.Owner != owner {
		return nil, 0, reverts.ErrNotInitialized
	}
	if rec.Status != staking.StatusStaked {
		return nil, 0, reverts.ErrNotStaked
	}
	paid, err := r.Settle(rec, now)
	if err != nil {
		return nil, 0, err
	}
	if err := r.store.Set(rec); err != nil {
		return nil, 0, err
	}
	return rec, paid, nil
}
