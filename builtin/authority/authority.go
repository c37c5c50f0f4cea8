// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority derives the signing capabilities of the staking program.
// Only the program can produce them: they are addresses derived from its id,
// so no private key exists for either.
package authority

import (
	"github.com/stakebox/stakebox/ledger"
)

var (
	custodySeed = []byte("authority")
	mintSeed    = []byte("mint")
)

// Authorities holds the two program derived signers.
type Authorities struct {
	program ledger.Address
	custody ledger.Address
	mint    ledger.Address
}

// New derives the authorities of program.
func New(program ledger.Address) *Authorities {
	return &Authorities{
		program: program,
		custody: ledger.DeriveAddress(program, custodySeed),
		mint:    ledger.DeriveAddress(program, mintSeed),
	}
}

// Program returns the program the authorities belong to.
func (a *Authorities) Program() ledger.Address {
	return a.program
}

// Custody is the delegate that freezes and thaws staked assets.
func (a *Authorities) Custody() ledger.Address {
	return a.custody
}

// Mint is the mint authority of the reward token and of the prize mints.
func (a *Authorities) Mint() ledger.Address {
	return a.mint
}
