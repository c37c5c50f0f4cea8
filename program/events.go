// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/stakebox/stakebox/ledger"
)

// EventKind names what a committed operation did.
type EventKind string

const (
	EventStaked              EventKind = "Staked"
	EventRedeemed            EventKind = "Redeemed"
	EventUnstaked            EventKind = "Unstaked"
	EventLootboxOpened       EventKind = "LootboxOpened"
	EventRandomnessRequested EventKind = "RandomnessRequested"
	EventRandomnessFulfilled EventKind = "RandomnessFulfilled"
	EventRandomnessConsumed  EventKind = "RandomnessConsumed"
	EventPrizeClaimed        EventKind = "PrizeClaimed"
	EventConsumerInitialized EventKind = "ConsumerInitialized"
)

// Valid reports whether k is one of the kinds above.
func (k EventKind) Valid() bool {
	switch k {
	case EventStaked, EventRedeemed, EventUnstaked, EventLootboxOpened,
		EventRandomnessRequested, EventRandomnessFulfilled, EventRandomnessConsumed,
		EventPrizeClaimed, EventConsumerInitialized:
		return true
	}
	return false
}

// Event is published after the operation that produced it is committed.
type Event struct {
	Kind    EventKind       `json:"kind"`
	Owner   ledger.Address  `json:"owner"`
	Asset   *ledger.Address `json:"asset,omitempty"`
	Oracle  *ledger.Address `json:"oracle,omitempty"`
	Prize   *ledger.Address `json:"prize,omitempty"`
	Amount  uint64          `json:"amount,omitempty"`
	Tier    uint64          `json:"tier,omitempty"`
	Outcome string          `json:"outcome,omitempty"`
	Time    uint64          `json:"time"`
}

func addr(a ledger.Address) *ledger.Address {
	return &a
}
