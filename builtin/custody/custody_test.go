// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/test/datagen"
	"github.com/stakebox/stakebox/test/teststate"
)

func TestFreezeThaw(t *testing.T) {
	tokens := token.New(teststate.Context(teststate.New(t), ledger.TokenProgram))
	custody := New(tokens)

	var (
		mint      = datagen.RandAddress()
		owner     = datagen.RandAddress()
		authority = datagen.RandAddress()
		edition   = token.EditionAddress(mint)
	)
	_, err := tokens.CreateMint(mint, datagen.RandAddress(), 0, true)
	require.NoError(t, err)
	account, err := tokens.EnsureAssociatedAccount(owner, mint)
	require.NoError(t, err)
	m, err := tokens.Mint(mint)
	require.NoError(t, err)
	require.NoError(t, tokens.MintTo(mint, account, m.Authority, 1))

	// not delegated yet
	assert.ErrorIs(t, custody.Freeze(authority, account, edition, mint), reverts.ErrInvalidDelegate)

	require.NoError(t, tokens.ApproveDelegate(account, authority, owner, 1))

	assert.ErrorIs(t, custody.Freeze(authority, account, datagen.RandAddress(), mint), reverts.ErrMintMismatch)
	assert.ErrorIs(t, custody.Freeze(authority, account, edition, datagen.RandAddress()), reverts.ErrMintMismatch)
	assert.ErrorIs(t, custody.Freeze(datagen.RandAddress(), account, edition, mint), reverts.ErrInvalidDelegate)
	assert.ErrorIs(t, custody.Freeze(authority, datagen.RandAddress(), edition, mint), reverts.ErrAccountNotFound)
	assert.ErrorIs(t, custody.Thaw(authority, account, edition, mint), reverts.ErrAccountNotFrozen)

	require.NoError(t, custody.Freeze(authority, account, edition, mint))
	assert.ErrorIs(t, custody.Freeze(authority, account, edition, mint), reverts.ErrAccountFrozen)

	acc, err := tokens.Account(account)
	require.NoError(t, err)
	assert.True(t, acc.Frozen)
	assert.Equal(t, uint64(1), acc.Amount, "asset stays with the owner")

	require.NoError(t, custody.Thaw(authority, account, edition, mint))
	acc, err = tokens.Account(account)
	require.NoError(t, err)
	assert.False(t, acc.Frozen)
}

func TestFungibleCannotBeFrozen(t *testing.T) {
	tokens := token.New(teststate.Context(teststate.New(t), ledger.TokenProgram))
	custody := New(tokens)

	mint, owner, authority := datagen.RandAddress(), datagen.RandAddress(), datagen.RandAddress()
	_, err := tokens.CreateMint(mint, authority, 2, false)
	require.NoError(t, err)
	account, err := tokens.EnsureAssociatedAccount(owner, mint)
	require.NoError(t, err)
	require.NoError(t, tokens.MintTo(mint, account, authority, 100))
	require.NoError(t, tokens.ApproveDelegate(account, authority, owner, 1))

	assert.ErrorIs(t, custody.Freeze(authority, account, ledger.Address{}, mint), reverts.ErrMintMismatch)
}
