// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/program"
)

// Event is a stored program event. Seq orders events in insertion order.
type Event struct {
	Seq uint64 `json:"seq"`
	program.Event
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds event time, both ends inclusive. To is ignored when below From.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventFilter struct {
	Owner   *ledger.Address
	Kinds   []program.EventKind
	Range   *Range
	Options *Options
	Order   Order
}
