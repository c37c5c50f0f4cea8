// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/rewards"
	"github.com/stakebox/stakebox/builtin/staking"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/test/datagen"
	"github.com/stakebox/stakebox/test/testenv"
)

const day = ledger.SecondsPerDay

type setup struct {
	env     *testenv.Env
	store   *staking.Store
	staking *staking.Staking
	owner   ledger.Address
	asset   ledger.Address
}

func newSetup(t *testing.T) *setup {
	env := testenv.New(t, testenv.Params(params.ModeImmediate))
	store := staking.NewStore(env.Context())
	settler := rewards.New(env.Params, store, env.Tokens, env.Auth)
	owner := datagen.RandAddress()
	return &setup{
		env:     env,
		store:   store,
		staking: staking.New(store, env.Tokens, env.Custody, env.Auth, settler),
		owner:   owner,
		asset:   env.NewCollectible(t, owner),
	}
}

func TestStake(t *testing.T) {
	s := newSetup(t)

	rec, err := s.staking.Stake(s.owner, s.asset, 1000)
	require.NoError(t, err)
	assert.Equal(t, &staking.Record{
		CustodyAsset:   s.asset,
		Owner:          s.owner,
		Status:         staking.StatusStaked,
		StakeStartTime: 1000,
		LastRedeemTime: 1000,
		Initialized:    true,
	}, rec)

	stored, err := s.staking.Get(s.owner, s.asset)
	require.NoError(t, err)
	assert.Equal(t, rec, stored)

	acc, err := s.env.Tokens.Account(s.asset)
	require.NoError(t, err)
	assert.True(t, acc.Frozen)
	assert.True(t, acc.IsDelegatedTo(s.env.Auth.Custody()))
	assert.Equal(t, s.owner, acc.Owner)

	// the frozen collectible cannot leave the owner
	dest, err := s.env.Tokens.EnsureAssociatedAccount(datagen.RandAddress(), acc.Mint)
	require.NoError(t, err)
	assert.ErrorIs(t, s.env.Tokens.Transfer(s.asset, dest, s.owner, 1), reverts.ErrAccountFrozen)

	_, err = s.staking.Stake(s.owner, s.asset, 2000)
	assert.ErrorIs(t, err, reverts.ErrAlreadyStaked)
}

func TestStakeForeignAsset(t *testing.T) {
	s := newSetup(t)
	other := datagen.RandAddress()

	_, err := s.staking.Stake(other, s.asset, 1)
	assert.ErrorIs(t, err, reverts.ErrOwnerMismatch)

	_, err = s.staking.Stake(s.owner, datagen.RandAddress(), 1)
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)
}

func TestUnstakePreconditions(t *testing.T) {
	s := newSetup(t)

	_, _, err := s.staking.Unstake(s.owner, s.asset, 10)
	assert.ErrorIs(t, err, reverts.ErrNotInitialized)

	_, err = s.staking.Get(s.owner, s.asset)
	assert.ErrorIs(t, err, reverts.ErrNotInitialized)

	_, err = s.staking.Stake(s.owner, s.asset, 10)
	require.NoError(t, err)
	_, _, err = s.staking.Unstake(datagen.RandAddress(), s.asset, 20)
	assert.ErrorIs(t, err, reverts.ErrNotInitialized, "record of another owner")

	_, _, err = s.staking.Unstake(s.owner, s.asset, 20)
	require.NoError(t, err)
	_, _, err = s.staking.Unstake(s.owner, s.asset, 30)
	assert.ErrorIs(t, err, reverts.ErrNotStaked)
}

func TestStakeCycles(t *testing.T) {
	s := newSetup(t)

	_, err := s.staking.Stake(s.owner, s.asset, 0)
	require.NoError(t, err)

	rec, paid, err := s.staking.Unstake(s.owner, s.asset, day)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), paid)
	assert.Equal(t, staking.StatusUnstaked, rec.Status)
	assert.Equal(t, day, rec.LastRedeemTime)
	assert.Equal(t, uint64(10), rec.TotalEarned)
	assert.Equal(t, uint64(10), s.env.RewardBalance(t, s.owner))

	acc, err := s.env.Tokens.Account(s.asset)
	require.NoError(t, err)
	assert.False(t, acc.Frozen)
	assert.False(t, acc.IsDelegatedTo(s.env.Auth.Custody()))

	// nothing accrues while unstaked
	rec, err = s.staking.Stake(s.owner, s.asset, 5*day)
	require.NoError(t, err)
	assert.Equal(t, 5*day, rec.StakeStartTime)
	assert.Equal(t, 5*day, rec.LastRedeemTime)
	assert.Equal(t, uint64(10), rec.TotalEarned, "total survives cycles")

	rec, paid, err = s.staking.Unstake(s.owner, s.asset, 7*day)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), paid)
	assert.Equal(t, uint64(30), rec.TotalEarned)
	assert.Equal(t, uint64(30), s.env.RewardBalance(t, s.owner))
}

func TestLastRedeemNeverDecreases(t *testing.T) {
	s := newSetup(t)

	_, err := s.staking.Stake(s.owner, s.asset, 100)
	require.NoError(t, err)
	_, _, err = s.staking.Unstake(s.owner, s.asset, 200)
	require.NoError(t, err)

	// a clock running behind
	rec, err := s.staking.Stake(s.owner, s.asset, 150)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), rec.LastRedeemTime)

	rec, paid, err := s.staking.Unstake(s.owner, s.asset, 190)
	require.NoError(t, err)
	assert.Zero(t, paid)
	assert.Equal(t, uint64(200), rec.LastRedeemTime)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "staked", staking.StatusStaked.String())
	assert.Equal(t, "unstaked", staking.StatusUnstaked.String())
	assert.Equal(t, "Status(3)", staking.Status(3).String())
}
