// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/stakebox/stakebox/ledger"
)

// Raw is a single RLP encoded value stored at a fixed position.
type Raw[V any] struct {
	context *Context
	pos     ledger.Bytes32
}

func NewRaw[V any](context *Context, pos ledger.Bytes32) *Raw[V] {
	return &Raw[V]{context: context, pos: pos}
}

func (r *Raw[V]) Get() (value V, err error) {
	r.context.countLoad()
	err = r.context.state.DecodeStorage(r.context.address, r.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (r *Raw[V]) Upsert(value V) error {
	r.context.countStore()
	return r.context.state.EncodeStorage(r.context.address, r.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
