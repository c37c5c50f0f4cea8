// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/test/datagen"
	"github.com/stakebox/stakebox/test/teststate"
)

type fixture struct {
	tokens    *Native
	mint      ledger.Address
	authority ledger.Address
	owner     ledger.Address
	account   ledger.Address
}

func newFixture(t *testing.T) *fixture {
	tokens := New(teststate.Context(teststate.New(t), ledger.TokenProgram))
	f := &fixture{
		tokens:    tokens,
		mint:      datagen.RandAddress(),
		authority: datagen.RandAddress(),
		owner:     datagen.RandAddress(),
	}
	_, err := tokens.CreateMint(f.mint, f.authority, 2, false)
	require.NoError(t, err)

	f.account, err = tokens.EnsureAssociatedAccount(f.owner, f.mint)
	require.NoError(t, err)
	return f
}

func TestCreateMint(t *testing.T) {
	f := newFixture(t)

	m, err := f.tokens.Mint(f.mint)
	require.NoError(t, err)
	assert.Equal(t, &Mint{Authority: f.authority, Decimals: 2}, m)

	_, err = f.tokens.CreateMint(f.mint, f.authority, 0, false)
	assert.ErrorContains(t, err, "already exists")

	collectible := datagen.RandAddress()
	m, err = f.tokens.CreateMint(collectible, f.authority, 0, true)
	require.NoError(t, err)
	assert.Equal(t, EditionAddress(collectible), m.Edition)

	_, err = f.tokens.Mint(datagen.RandAddress())
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)
}

func TestEnsureAssociatedAccount(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, AssociatedAccount(f.owner, f.mint), f.account)
	assert.Equal(t, f.account, f.tokens.AssociatedAccount(f.owner, f.mint))

	require.NoError(t, f.tokens.MintTo(f.mint, f.account, f.authority, 5))

	// existing account is kept as is
	again, err := f.tokens.EnsureAssociatedAccount(f.owner, f.mint)
	require.NoError(t, err)
	assert.Equal(t, f.account, again)
	acc, err := f.tokens.Account(f.account)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), acc.Amount)

	_, err = f.tokens.EnsureAssociatedAccount(f.owner, datagen.RandAddress())
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)

	assert.NotEqual(t, f.account, AssociatedAccount(datagen.RandAddress(), f.mint))
}

func TestMintTo(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.tokens.MintTo(f.mint, f.account, datagen.RandAddress(), 1), reverts.ErrInvalidMintAuthority)
	assert.ErrorIs(t, f.tokens.MintTo(f.mint, datagen.RandAddress(), f.authority, 1), reverts.ErrAccountNotFound)

	other := datagen.RandAddress()
	_, err := f.tokens.CreateMint(other, f.authority, 0, false)
	require.NoError(t, err)
	assert.ErrorIs(t, f.tokens.MintTo(other, f.account, f.authority, 1), reverts.ErrMintMismatch)

	require.NoError(t, f.tokens.MintTo(f.mint, f.account, f.authority, math.MaxUint64))
	assert.ErrorIs(t, f.tokens.MintTo(f.mint, f.account, f.authority, 1), reverts.ErrArithmeticOverflow)
}

func TestBurnFrom(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.MintTo(f.mint, f.account, f.authority, 10))

	assert.ErrorIs(t, f.tokens.BurnFrom(f.account, f.mint, datagen.RandAddress(), 1), reverts.ErrOwnerMismatch)
	assert.ErrorIs(t, f.tokens.BurnFrom(f.account, datagen.RandAddress(), f.owner, 1), reverts.ErrMintMismatch)
	assert.ErrorIs(t, f.tokens.BurnFrom(f.account, f.mint, f.owner, 11), reverts.ErrInsufficientFunds)

	require.NoError(t, f.tokens.ApproveDelegate(f.account, datagen.RandAddress(), f.owner, 8))
	require.NoError(t, f.tokens.BurnFrom(f.account, f.mint, f.owner, 4))

	acc, err := f.tokens.Account(f.account)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), acc.Amount)
	assert.Equal(t, uint64(6), acc.DelegatedAmount, "delegation capped at balance")
}

func TestDelegation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.MintTo(f.mint, f.account, f.authority, 1))

	delegate := datagen.RandAddress()
	assert.ErrorIs(t, f.tokens.ApproveDelegate(f.account, delegate, f.owner, 2), reverts.ErrInsufficientFunds)
	assert.ErrorIs(t, f.tokens.ApproveDelegate(f.account, delegate, delegate, 1), reverts.ErrOwnerMismatch)

	require.NoError(t, f.tokens.ApproveDelegate(f.account, delegate, f.owner, 1))
	acc, err := f.tokens.Account(f.account)
	require.NoError(t, err)
	assert.True(t, acc.IsDelegatedTo(delegate))
	assert.False(t, acc.IsDelegatedTo(f.owner))

	require.NoError(t, f.tokens.RevokeDelegate(f.account, f.owner))
	acc, err = f.tokens.Account(f.account)
	require.NoError(t, err)
	assert.False(t, acc.IsDelegatedTo(delegate))
	assert.True(t, acc.Delegate.IsZero())
}

func TestFrozenAccount(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.MintTo(f.mint, f.account, f.authority, 1))

	dest, err := f.tokens.EnsureAssociatedAccount(datagen.RandAddress(), f.mint)
	require.NoError(t, err)

	require.NoError(t, f.tokens.SetFrozen(f.account, true))
	assert.ErrorIs(t, f.tokens.Transfer(f.account, dest, f.owner, 1), reverts.ErrAccountFrozen)
	assert.ErrorIs(t, f.tokens.RevokeDelegate(f.account, f.owner), reverts.ErrAccountFrozen)
	assert.ErrorIs(t, f.tokens.ApproveDelegate(f.account, dest, f.owner, 1), reverts.ErrAccountFrozen)
	assert.ErrorIs(t, f.tokens.BurnFrom(f.account, f.mint, f.owner, 1), reverts.ErrAccountFrozen)
	assert.ErrorIs(t, f.tokens.MintTo(f.mint, f.account, f.authority, 1), reverts.ErrAccountFrozen)

	require.NoError(t, f.tokens.SetFrozen(f.account, false))
	require.NoError(t, f.tokens.Transfer(f.account, dest, f.owner, 1))

	acc, err := f.tokens.Account(dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), acc.Amount)

	assert.ErrorIs(t, f.tokens.SetFrozen(datagen.RandAddress(), true), reverts.ErrAccountNotFound)
}

func TestTransfer(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.MintTo(f.mint, f.account, f.authority, 3))

	other := datagen.RandAddress()
	_, err := f.tokens.CreateMint(other, f.authority, 0, false)
	require.NoError(t, err)
	foreign, err := f.tokens.EnsureAssociatedAccount(f.owner, other)
	require.NoError(t, err)
	assert.ErrorIs(t, f.tokens.Transfer(f.account, foreign, f.owner, 1), reverts.ErrMintMismatch)

	dest, err := f.tokens.EnsureAssociatedAccount(datagen.RandAddress(), f.mint)
	require.NoError(t, err)
	assert.ErrorIs(t, f.tokens.Transfer(f.account, dest, f.owner, 4), reverts.ErrInsufficientFunds)
	assert.ErrorIs(t, f.tokens.Transfer(f.account, datagen.RandAddress(), f.owner, 1), reverts.ErrAccountNotFound)

	require.NoError(t, f.tokens.Transfer(f.account, dest, f.owner, 2))
	src, err := f.tokens.Account(f.account)
	require.NoError(t, err)
	dst, err := f.tokens.Account(dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), src.Amount)
	assert.Equal(t, uint64(2), dst.Amount)
}
