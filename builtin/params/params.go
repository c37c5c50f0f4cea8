// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params holds the fixed parameters of the staking program.
package params

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/ledger"
)

// Mode selects how a lootbox prize is picked.
type Mode uint8

const (
	// ModeImmediate picks the prize from the clock when the box is opened.
	ModeImmediate Mode = iota
	// ModeDeferred picks the prize from an oracle result consumed later.
	ModeDeferred
)

func (m Mode) String() string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeDeferred:
		return "deferred"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses the text form of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "immediate":
		return ModeImmediate, nil
	case "deferred":
		return ModeDeferred, nil
	}
	return 0, errors.Errorf("unknown lootbox mode %q", s)
}

// CatalogSize is the number of prizes a lootbox draws from.
const CatalogSize = 5

// Params are set once when the program is deployed.
type Params struct {
	ProgramID      ledger.Address
	RewardMint     ledger.Address
	RatePerDay     uint64 // reward units accrued per staked day
	RewardDecimals uint8
	Mode           Mode
	Catalog        []ledger.Address
}

// Validate checks the parameters are usable.
func (p *Params) Validate() error {
	if p.ProgramID.IsZero() {
		return errors.New("program id is zero")
	}
	if p.RewardMint.IsZero() {
		return errors.New("reward mint is zero")
	}
	if len(p.Catalog) != CatalogSize {
		return errors.Errorf("prize catalog must have %d entries, got %d", CatalogSize, len(p.Catalog))
	}
	seen := make(map[ledger.Address]bool, len(p.Catalog))
	for i, prize := range p.Catalog {
		if prize.IsZero() {
			return errors.Errorf("prize %d is zero", i)
		}
		if seen[prize] {
			return errors.Errorf("prize %v listed twice", prize)
		}
		seen[prize] = true
	}
	if _, ok := p.TierUnit(); !ok {
		return errors.Errorf("reward decimals %d too large", p.RewardDecimals)
	}
	if p.Mode > ModeDeferred {
		return errors.Errorf("invalid lootbox mode %v", p.Mode)
	}
	return nil
}

// TierUnit returns 10^RewardDecimals, the reward units in one whole credit.
// ok is false when it does not fit in uint64.
func (p *Params) TierUnit() (uint64, bool) {
	unit := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(p.RewardDecimals)))
	if !unit.IsUint64() {
		return 0, false
	}
	return unit.Uint64(), true
}

// Prize returns the catalog entry picked by index, wrapping around.
func (p *Params) Prize(index uint64) ledger.Address {
	return p.Catalog[index%uint64(len(p.Catalog))]
}
