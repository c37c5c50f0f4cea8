// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis creates the mints and collectibles a fresh store starts with.
package genesis

import (
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/builtin/authority"
	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/log"
	"github.com/stakebox/stakebox/state"
)

var logger = log.WithContext("pkg", "genesis")

var (
	metaAddress = ledger.BytesToAddress([]byte("genesis"))
	idKey       = ledger.BytesToBytes32([]byte("id"))
)

// Collectible is a one-of-one asset minted to Owner at genesis.
type Collectible struct {
	Mint  ledger.Address
	Owner ledger.Address
}

// Genesis describes the initial state.
type Genesis struct {
	builder *Builder
	id      ledger.Bytes32
	name    string
}

// New creates the genesis of the program described by p. The reward mint and
// the prize mints are owned by the program's mint authority; each collectible
// is minted once to its owner's associated account.
func New(name string, p *params.Params, collectibles []Collectible) (*Genesis, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.WithMessage(err, "params")
	}
	auth := authority.New(p.ProgramID)

	builder := new(Builder).
		State(func(st *state.State) error {
			tokens := token.New(slot.NewContext(ledger.TokenProgram, st, nil))
			if _, err := tokens.CreateMint(p.RewardMint, auth.Mint(), p.RewardDecimals, false); err != nil {
				return errors.WithMessage(err, "reward mint")
			}
			for _, prize := range p.Catalog {
				if _, err := tokens.CreateMint(prize, auth.Mint(), 0, true); err != nil {
					return errors.WithMessagef(err, "prize mint %v", prize)
				}
			}
			return nil
		}).
		State(func(st *state.State) error {
			tokens := token.New(slot.NewContext(ledger.TokenProgram, st, nil))
			// collectibles were minted by an outside creator whose authority is
			// the metadata program
			for _, c := range collectibles {
				if _, err := tokens.CreateMint(c.Mint, ledger.MetadataProgram, 0, true); err != nil {
					return errors.WithMessagef(err, "collectible %v", c.Mint)
				}
				account, err := tokens.EnsureAssociatedAccount(c.Owner, c.Mint)
				if err != nil {
					return err
				}
				if err := tokens.MintTo(c.Mint, account, ledger.MetadataProgram, 1); err != nil {
					return err
				}
			}
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder: builder, id: id, name: name}, nil
}

// ID returns the genesis id.
func (g *Genesis) ID() ledger.Bytes32 {
	return g.id
}

// Name returns the network name.
func (g *Genesis) Name() string {
	return g.name
}

// Setup builds the genesis state unless the store already has one. A store
// initialized from a different genesis is rejected.
func (g *Genesis) Setup(creator *state.Creator) error {
	raw, err := creator.NewState().GetRawStorage(metaAddress, idKey)
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		stored := ledger.BytesToBytes32(raw)
		if stored != g.id {
			return errors.Errorf("genesis mismatch: store has %v, want %v", stored, g.id)
		}
		return nil
	}
	id, err := g.builder.Build(creator)
	if err != nil {
		return err
	}
	logger.Info("genesis built", "name", g.name, "id", id)
	return nil
}
