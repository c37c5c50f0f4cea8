// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the unix time operations are stamped with.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock returns the current unix time in seconds.
type Clock interface {
	Now() uint64
}

// Func adapts a function to Clock.
type Func func() uint64

func (f Func) Now() uint64 { return f() }

// System is the wall clock of the host.
var System Clock = Func(func() uint64 {
	return uint64(time.Now().Unix())
})

// Fixed is a manually driven clock.
type Fixed struct {
	now atomic.Uint64
}

// NewFixed returns a clock stopped at now.
func NewFixed(now uint64) *Fixed {
	f := &Fixed{}
	f.now.Store(now)
	return f
}

func (f *Fixed) Now() uint64 { return f.now.Load() }

// Set moves the clock to now.
func (f *Fixed) Set(now uint64) { f.now.Store(now) }

// Advance moves the clock forward by seconds.
func (f *Fixed) Advance(seconds uint64) { f.now.Add(seconds) }
