// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testenv sets up the token and custody programs with a reward mint,
// a prize catalog and collectibles for tests of the staking program.
package testenv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/authority"
	"github.com/stakebox/stakebox/builtin/custody"
	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/state"
	"github.com/stakebox/stakebox/test/datagen"
	"github.com/stakebox/stakebox/test/teststate"
)

type Env struct {
	State   *state.State
	Params  *params.Params
	Auth    *authority.Authorities
	Tokens  *token.Native
	Custody *custody.Native
}

// Params returns program parameters with whole credit rewards, i.e. zero
// decimals and 10 credits a day.
func Params(mode params.Mode) *params.Params {
	catalog := make([]ledger.Address, params.CatalogSize)
	for i := range catalog {
		catalog[i] = datagen.RandAddress()
	}
	return &params.Params{
		ProgramID:      datagen.RandAddress(),
		RewardMint:     datagen.RandAddress(),
		RatePerDay:     10,
		RewardDecimals: 0,
		Mode:           mode,
		Catalog:        catalog,
	}
}

// New builds an Env over a fresh state.
func New(t testing.TB, p *params.Params) *Env {
	require.NoError(t, p.Validate())

	st := teststate.New(t)
	tokens := token.New(slot.NewContext(ledger.TokenProgram, st, nil))
	env := &Env{
		State:   st,
		Params:  p,
		Auth:    authority.New(p.ProgramID),
		Tokens:  tokens,
		Custody: custody.New(tokens),
	}

	_, err := tokens.CreateMint(p.RewardMint, env.Auth.Mint(), p.RewardDecimals, false)
	require.NoError(t, err)
	for _, prize := range p.Catalog {
		_, err := tokens.CreateMint(prize, env.Auth.Mint(), 0, true)
		require.NoError(t, err)
	}
	return env
}

// Context returns a slot context of the staking program.
func (e *Env) Context() *slot.Context {
	return slot.NewContext(e.Params.ProgramID, e.State, nil)
}

// NewCollectible mints a fresh collectible to owner and returns the account holding it.
func (e *Env) NewCollectible(t testing.TB, owner ledger.Address) ledger.Address {
	mint := datagen.RandAddress()
	creator := datagen.RandAddress()
	_, err := e.Tokens.CreateMint(mint, creator, 0, true)
	require.NoError(t, err)
	account, err := e.Tokens.EnsureAssociatedAccount(owner, mint)
	require.NoError(t, err)
	require.NoError(t, e.Tokens.MintTo(mint, account, creator, 1))
	return account
}

// Balance returns the amount owner holds of mint, zero without an account.
func (e *Env) Balance(t testing.TB, owner, mint ledger.Address) uint64 {
	acc, err := e.Tokens.Account(token.AssociatedAccount(owner, mint))
	if err != nil {
		return 0
	}
	return acc.Amount
}

// RewardBalance returns the reward credits of owner.
func (e *Env) RewardBalance(t testing.TB, owner ledger.Address) uint64 {
	return e.Balance(t, owner, e.Params.RewardMint)
}

// Fund mints amount reward credits to owner.
func (e *Env) Fund(t testing.TB, owner ledger.Address, amount uint64) {
	dest, err := e.Tokens.EnsureAssociatedAccount(owner, e.Params.RewardMint)
	require.NoError(t, err)
	require.NoError(t, e.Tokens.MintTo(e.Params.RewardMint, dest, e.Auth.Mint(), amount))
}
