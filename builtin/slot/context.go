// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/state"
)

// Counter tallies storage slot accesses of an operation.
type Counter struct {
	Loads  uint64
	Stores uint64
}

// Total returns loads plus stores.
func (c *Counter) Total() uint64 {
	return c.Loads + c.Stores
}

// Context binds typed slots to the storage of one program within one state.
type Context struct {
	address ledger.Address
	state   *state.State
	counter *Counter
}

// NewContext creates a slot context. counter may be nil.
func NewContext(address ledger.Address, state *state.State, counter *Counter) *Context {
	return &Context{
		address: address,
		state:   state,
		counter: counter,
	}
}

// Address returns the program owning the slots.
func (c *Context) Address() ledger.Address {
	return c.address
}

// State returns the underlying state.
func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) countLoad() {
	if c.counter != nil {
		c.counter.Loads++
	}
}

func (c *Context) countStore() {
	if c.counter != nil {
		c.counter.Stores++
	}
}
