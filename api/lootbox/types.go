// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lootbox

import (
	"github.com/stakebox/stakebox/builtin/lootbox"
	"github.com/stakebox/stakebox/ledger"
)

type OpenRequest struct {
	Asset ledger.Address `json:"asset"`
	Tier  uint64         `json:"tier"`
}

// Pointer for marshal lootbox pointer
type Pointer struct {
	PrizeAsset    *ledger.Address `json:"prizeAsset"`
	IsClaimed     bool            `json:"isClaimed"`
	IsInitialized bool            `json:"isInitialized"`
	Redeemable    bool            `json:"redeemable"`
}

func convertPointer(p *lootbox.Pointer) *Pointer {
	ptr := &Pointer{
		IsClaimed:     p.IsClaimed,
		IsInitialized: p.IsInitialized,
		Redeemable:    p.Redeemable,
	}
	if !p.PrizeAsset.IsZero() {
		prize := p.PrizeAsset
		ptr.PrizeAsset = &prize
	}
	return ptr
}

type ConsumeResult struct {
	Outcome string   `json:"outcome"`
	Pointer *Pointer `json:"pointer,omitempty"`
}
