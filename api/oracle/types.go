// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package oracle

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/oracle"
)

// Request for marshal oracle request account
type Request struct {
	Owner       ledger.Address `json:"owner"`
	Counter     uint64         `json:"counter"`
	Seed        ledger.Bytes32 `json:"seed"`
	Result      ledger.Bytes32 `json:"result"`
	Proof       hexutil.Bytes  `json:"proof"`
	FulfilledAt uint64         `json:"fulfilledAt"`
	Pending     bool           `json:"pending"`
}

func convertRequest(r *oracle.Request) *Request {
	return &Request{
		Owner:       r.Owner,
		Counter:     r.Counter,
		Seed:        r.Seed,
		Result:      r.Result,
		Proof:       r.Proof,
		FulfilledAt: r.FulfilledAt,
		Pending:     r.IsPending(),
	}
}
