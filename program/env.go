// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/stakebox/stakebox/builtin/authority"
	"github.com/stakebox/stakebox/builtin/custody"
	"github.com/stakebox/stakebox/builtin/lootbox"
	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/builtin/randomness"
	"github.com/stakebox/stakebox/builtin/rewards"
	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/builtin/staking"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/oracle"
	"github.com/stakebox/stakebox/state"
)

// Env binds every builtin to the state of one transaction.
type Env struct {
	State      *state.State
	Now        uint64
	Tokens     *token.Native
	Custody    *custody.Native
	Oracle     *oracle.Native
	Records    *staking.Store
	Staking    *staking.Staking
	Rewards    *rewards.Rewards
	Lootbox    *lootbox.Lootbox
	Randomness *randomness.Randomness

	counter *slot.Counter
	events  []*Event
}

func newEnv(st *state.State, now uint64, p *params.Params, auth *authority.Authorities) *Env {
	counter := &slot.Counter{}
	var (
		tokens  = token.New(slot.NewContext(ledger.TokenProgram, st, counter))
		orc     = oracle.New(slot.NewContext(ledger.OracleProgram, st, counter))
		sctx    = slot.NewContext(p.ProgramID, st, counter)
		records = staking.NewStore(sctx)
		rwd     = rewards.New(p, records, tokens, auth)
		rnd     = randomness.New(sctx, orc)
		lbx     = lootbox.New(p, lootbox.NewStore(sctx), records, tokens, auth, rnd)
		cust    = custody.New(tokens)
	)
	rnd.SetLootbox(lbx)

	return &Env{
		State:      st,
		Now:        now,
		Tokens:     tokens,
		Custody:    cust,
		Oracle:     orc,
		Records:    records,
		Staking:    staking.New(records, tokens, cust, auth, rwd),
		Rewards:    rwd,
		Lootbox:    lbx,
		Randomness: rnd,
		counter:    counter,
	}
}

// Emit queues ev for publication once the transaction commits.
func (e *Env) Emit(ev *Event) {
	ev.Time = e.Now
	e.events = append(e.events, ev)
}
