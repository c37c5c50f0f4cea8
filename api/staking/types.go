// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/stakebox/stakebox/builtin/staking"
	"github.com/stakebox/stakebox/ledger"
)

// AssetRequest is the body of stake, redeem and unstake.
type AssetRequest struct {
	Asset ledger.Address `json:"asset"`
}

// Record for marshal stake record
type Record struct {
	CustodyAsset   ledger.Address `json:"custodyAsset"`
	Owner          ledger.Address `json:"owner"`
	Status         string         `json:"status"`
	StakeStartTime uint64         `json:"stakeStartTime"`
	LastRedeemTime uint64         `json:"lastRedeemTime"`
	TotalEarned    uint64         `json:"totalEarned"`
	Initialized    bool           `json:"initialized"`
}

func convertRecord(rec *staking.Record) *Record {
	return &Record{
		CustodyAsset:   rec.CustodyAsset,
		Owner:          rec.Owner,
		Status:         rec.Status.String(),
		StakeStartTime: rec.StakeStartTime,
		LastRedeemTime: rec.LastRedeemTime,
		TotalEarned:    rec.TotalEarned,
		Initialized:    rec.Initialized,
	}
}

// Result is the response of a staking operation.
type Result struct {
	Record *Record `json:"record"`
	Paid   uint64  `json:"paid"`
}
