// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package program runs staking and lootbox operations as atomic transactions
// over the committed state.
package program

import (
	"context"
	"crypto/ecdsa"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/builtin/authority"
	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/clock"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/log"
	"github.com/stakebox/stakebox/metrics"
	"github.com/stakebox/stakebox/state"
)

var (
	logger = log.WithContext("pkg", "program")

	metricOps        = metrics.LazyLoadCounterVec("program_ops_total", []string{"op", "result"})
	metricOpDuration = metrics.LazyLoadHistogramVec("program_op_duration_ms", []string{"op"}, metrics.BucketOpMillis)
	metricOpSlots    = metrics.LazyLoadHistogramVec("program_op_slots", []string{"op"}, metrics.BucketSlots)
)

// ErrOracleKeyMissing is returned by Fulfill when no oracle key is configured.
var ErrOracleKeyMissing = errors.New("oracle key not configured")

// Program is the staking program bound to a committed state.
type Program struct {
	params    *params.Params
	auth      *authority.Authorities
	creator   *state.Creator
	clock     clock.Clock
	locks     *ownerLocks
	oracleKey *ecdsa.PrivateKey

	feed  event.Feed
	scope event.SubscriptionScope
}

// Option configures a Program.
type Option func(*Program)

// WithOracleKey lets the program fulfill randomness requests itself.
func WithOracleKey(key *ecdsa.PrivateKey) Option {
	return func(p *Program) {
		p.oracleKey = key
	}
}

// New creates the program. params must be valid.
func New(creator *state.Creator, p *params.Params, clk clock.Clock, opts ...Option) (*Program, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.WithMessage(err, "params")
	}
	prog := &Program{
		params:  p,
		auth:    authority.New(p.ProgramID),
		creator: creator,
		clock:   clk,
		locks:   newOwnerLocks(),
	}
	for _, opt := range opts {
		opt(prog)
	}
	return prog, nil
}

// Params returns the program parameters.
func (p *Program) Params() *params.Params {
	return p.params
}

// Authorities returns the program derived signers.
func (p *Program) Authorities() *authority.Authorities {
	return p.auth
}

// OraclePublicKey returns the key results are verified with, nil without an oracle key.
func (p *Program) OraclePublicKey() *ecdsa.PublicKey {
	if p.oracleKey == nil {
		return nil
	}
	return &p.oracleKey.PublicKey
}

// SubscribeEvents delivers committed events to ch. Receivers must keep up,
// publishing blocks until every subscriber took the event.
func (p *Program) SubscribeEvents(ch chan *Event) event.Subscription {
	return p.scope.Track(p.feed.Subscribe(ch))
}

// Close ends all subscriptions.
func (p *Program) Close() {
	p.scope.Close()
}

// Execute runs fn as one transaction of owner. Transactions of one owner are
// serialized. The clock is read once; fn sees the same now throughout. If fn
// fails nothing is written, otherwise all its changes are committed in one
// batch and its events are published.
func (p *Program) Execute(ctx context.Context, op string, owner ledger.Address, fn func(env *Env) error) error {
	return p.executeLocked(ctx, op, owner, nil, fn)
}

// executeLocked is Execute that also holds the locks of shared, for
// operations writing accounts not keyed by owner alone.
func (p *Program) executeLocked(ctx context.Context, op string, owner ledger.Address, shared []ledger.Address, fn func(env *Env) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	events, err := p.execute(op, owner, shared, fn)
	for _, ev := range events {
		p.feed.Send(ev)
	}
	return err
}

func (p *Program) execute(op string, owner ledger.Address, shared []ledger.Address, fn func(env *Env) error) (events []*Event, err error) {
	unlock := p.locks.LockAll(append([]ledger.Address{owner}, shared...)...)
	defer unlock()

	start := time.Now()
	st := p.creator.NewState()
	env := newEnv(st, p.clock.Now(), p.params, p.auth)
	checkpoint := st.NewCheckpoint()

	defer func() {
		metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
		metricOpSlots().ObserveWithLabels(int64(env.counter.Total()), map[string]string{"op": op})
		metricOps().AddWithLabel(1, map[string]string{"op": op, "result": result(err)})
	}()

	if err := fn(env); err != nil {
		st.RevertTo(checkpoint)
		if reverts.IsRevertErr(err) {
			logger.Debug("operation reverted", "op", op, "owner", owner, "kind", reverts.KindOf(err))
		} else {
			logger.Warn("operation failed", "op", op, "owner", owner, "err", err)
		}
		return nil, err
	}

	stage := st.Stage()
	if err := stage.Commit(); err != nil {
		logger.Error("failed to commit", "op", op, "owner", owner, "err", err)
		return nil, errors.WithMessage(err, "commit")
	}
	logger.Debug("operation committed", "op", op, "owner", owner, "now", env.Now, "slots", stage.Len())
	return env.events, nil
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := reverts.KindOf(err); kind != "" {
		return kind
	}
	return "error"
}

// view runs fn against the latest committed state without writing.
func (p *Program) view(fn func(env *Env) error) error {
	return fn(newEnv(p.creator.NewState(), p.clock.Now(), p.params, p.auth))
}
