// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lootbox

import (
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/ledger"
)

// Pointer is the lootbox of one owner. At most one box is armed at a time.
type Pointer struct {
	PrizeAsset    ledger.Address // only meaningful once initialized and redeemable
	IsClaimed     bool
	IsInitialized bool
	Redeemable    bool
}

// IsPending returns whether a box is open and its prize not yet claimed.
func (p *Pointer) IsPending() bool {
	return p.IsInitialized && !p.IsClaimed
}

var slotPointers = ledger.BytesToBytes32([]byte("lootbox-pointers"))

// Store persists lootbox pointers by owner.
type Store struct {
	pointers *slot.Mapping[ledger.Address, *Pointer]
}

func NewStore(sctx *slot.Context) *Store {
	return &Store{
		pointers: slot.NewMapping[ledger.Address, *Pointer](sctx, slotPointers),
	}
}

// Get returns the pointer of owner, the zero pointer if none was opened.
func (s *Store) Get(owner ledger.Address) (*Pointer, error) {
	p, err := s.pointers.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get lootbox pointer")
	}
	if p == nil {
		return &Pointer{}, nil
	}
	return p, nil
}

func (s *Store) Set(owner ledger.Address, p *Pointer) error {
	if err := s.pointers.Set(owner, p); err != nil {
		return errors.Wrap(err, "failed to set lootbox pointer")
	}
	return nil
}
