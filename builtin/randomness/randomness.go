// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package randomness turns oracle results into lootbox prizes. A result is
// consumed at most once.
package randomness

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/builtin/lootbox"
	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/oracle"
)

// Consumer tracks the results of one oracle request account taken by one owner.
type Consumer struct {
	Oracle       ledger.Address
	Owner        ledger.Address
	LastConsumed ledger.Bytes32 // zero until a result is consumed
}

// Outcome of a consume.
type Outcome uint8

const (
	// OutcomePending means the oracle has not answered yet.
	OutcomePending Outcome = iota
	// OutcomeDuplicate means the result was consumed before.
	OutcomeDuplicate
	// OutcomeResolved means the result picked the prize.
	OutcomeResolved
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeResolved:
		return "resolved"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

var (
	slotConsumers = ledger.BytesToBytes32([]byte("randomness-consumers"))
	slotBindings  = ledger.BytesToBytes32([]byte("randomness-bindings"))
)

// ConsumerKey is the storage key of the consumer state of owner on ref.
func ConsumerKey(ref, owner ledger.Address) ledger.Bytes32 {
	return ledger.Blake2b(ref.Bytes(), owner.Bytes())
}

type Randomness struct {
	consumers *slot.Mapping[ledger.Bytes32, *Consumer]
	bindings  *slot.Mapping[ledger.Address, ledger.Address]
	oracle    oracle.Oracle
	lootbox   *lootbox.Lootbox
}

var _ lootbox.Requester = (*Randomness)(nil)

// New creates the consumer. The lootbox can be attached later with SetLootbox
// since the two refer to each other.
func New(sctx *slot.Context, oracle oracle.Oracle) *Randomness {
	return &Randomness{
		consumers: slot.NewMapping[ledger.Bytes32, *Consumer](sctx, slotConsumers),
		bindings:  slot.NewMapping[ledger.Address, ledger.Address](sctx, slotBindings),
		oracle:    oracle,
	}
}

func (r *Randomness) SetLootbox(l *lootbox.Lootbox) {
	r.lootbox = l
}

// Init registers the request account ref for owner and binds it as the
// account used by the owner's lootboxes.
func (r *Randomness) Init(owner, ref ledger.Address) (*Consumer, error) {
	if err := r.oracle.Register(ref, owner); err != nil {
		return nil, err
	}
	key := ConsumerKey(ref, owner)
	c, err := r.consumers.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get consumer")
	}
	if c == nil {
		c = &Consumer{Oracle: ref, Owner: owner}
		if err := r.consumers.Set(key, c); err != nil {
			return nil, errors.Wrap(err, "failed to set consumer")
		}
	}
	if err := r.bindings.Set(owner, ref); err != nil {
		return nil, errors.Wrap(err, "failed to bind oracle account")
	}
	return c, nil
}

// Get returns the consumer state bound to owner.
func (r *Randomness) Get(owner ledger.Address) (*Consumer, error) {
	ref, err := r.bindings.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get oracle binding")
	}
	if ref.IsZero() {
		return nil, reverts.ErrInvalidOracleAccount
	}
	c, err := r.consumers.Get(ConsumerKey(ref, owner))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get consumer")
	}
	if c == nil || c.Oracle != ref || c.Owner != owner {
		return nil, reverts.ErrInvalidOracleAccount
	}
	// the request account must still belong to owner
	reqOwner, err := r.oracle.Owner(ref)
	if err != nil {
		return nil, err
	}
	if reqOwner != owner {
		return nil, reverts.ErrInvalidOracleAccount
	}
	return c, nil
}

// Bound fails unless owner has a usable request account bound.
func (r *Randomness) Bound(owner ledger.Address) error {
	_, err := r.Get(owner)
	return err
}

// RequestRandomness submits a request on the account bound to owner.
func (r *Randomness) RequestRandomness(owner ledger.Address, seed ledger.Bytes32) error {
	c, err := r.Get(owner)
	if err != nil {
		return err
	}
	return r.oracle.Request(c.Oracle, owner, seed)
}

// Consume reads the oracle result of owner. A new result resolves the prize
// of the pending lootbox; a zero or already seen result changes nothing.
func (r *Randomness) Consume(owner ledger.Address) (Outcome, *lootbox.Pointer, error) {
	c, err := r.Get(owner)
	if err != nil {
		return 0, nil, err
	}
	result, err := r.oracle.Result(c.Oracle)
	if err != nil {
		return 0, nil, err
	}
	if result.IsZero() {
		return OutcomePending, nil, nil
	}
	if result == c.LastConsumed {
		return OutcomeDuplicate, nil, nil
	}

	p, err := r.lootbox.Resolve(owner, uint64(result[0]))
	if err != nil {
		return 0, nil, err
	}
	c.LastConsumed = result
	if err := r.consumers.Set(ConsumerKey(c.Oracle, owner), c); err != nil {
		return 0, nil, errors.Wrap(err, "failed to set consumer")
	}
	return OutcomeResolved, p, nil
}
