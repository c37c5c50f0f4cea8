// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/stakebox/stakebox/ledger"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in programs.
// Values are RLP encoded; an absent entry decodes to the zero value of V
// (nil for pointer types).
type Mapping[K Key, V any] struct {
	context *Context
	basePos ledger.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos ledger.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) ledger.Bytes32 {
	return ledger.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value for key.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	m.context.countLoad()
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
			return rlp.DecodeBytes(raw, value)
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores value for key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	m.context.countStore()
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the entry of key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.countStore()
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}
