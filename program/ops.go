// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"context"

	"github.com/stakebox/stakebox/builtin/lootbox"
	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/builtin/randomness"
	"github.com/stakebox/stakebox/builtin/staking"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/oracle"
)

// Stake puts the collectible held in asset into custody.
func (p *Program) Stake(ctx context.Context, owner, asset ledger.Address) (rec *staking.Record, err error) {
	err = p.Execute(ctx, "stake", owner, func(env *Env) error {
		if rec, err = env.Staking.Stake(owner, asset, env.Now); err != nil {
			return err
		}
		env.Emit(&Event{Kind: EventStaked, Owner: owner, Asset: addr(asset)})
		return nil
	})
	return
}

// Redeem pays the rewards accrued by the staked asset.
func (p *Program) Redeem(ctx context.Context, owner, asset ledger.Address) (rec *staking.Record, paid uint64, err error) {
	err = p.Execute(ctx, "redeem", owner, func(env *Env) error {
		if rec, paid, err = env.Rewards.Redeem(owner, asset, env.Now); err != nil {
			return err
		}
		env.Emit(&Event{Kind: EventRedeemed, Owner: owner, Asset: addr(asset), Amount: paid})
		return nil
	})
	return
}

// Unstake releases the asset from custody and pays the accrued rewards.
func (p *Program) Unstake(ctx context.Context, owner, asset ledger.Address) (rec *staking.Record, paid uint64, err error) {
	err = p.Execute(ctx, "unstake", owner, func(env *Env) error {
		if rec, paid, err = env.Staking.Unstake(owner, asset, env.Now); err != nil {
			return err
		}
		env.Emit(&Event{Kind: EventUnstaked, Owner: owner, Asset: addr(asset), Amount: paid})
		return nil
	})
	return
}

// Open burns credits for a lootbox of tier, gated by the earnings of asset.
func (p *Program) Open(ctx context.Context, owner, asset ledger.Address, tier uint64) (ptr *lootbox.Pointer, err error) {
	err = p.Execute(ctx, "open", owner, func(env *Env) error {
		if ptr, err = env.Lootbox.Open(owner, asset, tier, env.Now); err != nil {
			return err
		}
		ev := &Event{Kind: EventLootboxOpened, Owner: owner, Asset: addr(asset), Tier: tier}
		if ptr.Redeemable {
			ev.Prize = addr(ptr.PrizeAsset)
		}
		env.Emit(ev)

		if p.params.Mode == params.ModeDeferred {
			c, err := env.Randomness.Get(owner)
			if err != nil {
				return err
			}
			env.Emit(&Event{Kind: EventRandomnessRequested, Owner: owner, Oracle: addr(c.Oracle)})
		}
		return nil
	})
	return
}

// Consume applies the oracle result of owner to the pending lootbox.
func (p *Program) Consume(ctx context.Context, owner ledger.Address) (outcome randomness.Outcome, ptr *lootbox.Pointer, err error) {
	err = p.Execute(ctx, "consume", owner, func(env *Env) error {
		if outcome, ptr, err = env.Randomness.Consume(owner); err != nil {
			return err
		}
		ev := &Event{Kind: EventRandomnessConsumed, Owner: owner, Outcome: outcome.String()}
		if outcome == randomness.OutcomeResolved {
			ev.Prize = addr(ptr.PrizeAsset)
		}
		env.Emit(ev)
		return nil
	})
	return
}

// Claim mints the prize of the pending lootbox to owner.
func (p *Program) Claim(ctx context.Context, owner ledger.Address) (ptr *lootbox.Pointer, err error) {
	err = p.Execute(ctx, "claim", owner, func(env *Env) error {
		if ptr, err = env.Lootbox.Claim(owner); err != nil {
			return err
		}
		env.Emit(&Event{Kind: EventPrizeClaimed, Owner: owner, Prize: addr(ptr.PrizeAsset)})
		return nil
	})
	return
}

// InitConsumer binds the oracle request account ref to owner. ref is locked
// too, so concurrent owners cannot both register it.
func (p *Program) InitConsumer(ctx context.Context, owner, ref ledger.Address) (c *randomness.Consumer, err error) {
	err = p.executeLocked(ctx, "init_consumer", owner, []ledger.Address{ref}, func(env *Env) error {
		if c, err = env.Randomness.Init(owner, ref); err != nil {
			return err
		}
		env.Emit(&Event{Kind: EventConsumerInitialized, Owner: owner, Oracle: addr(ref)})
		return nil
	})
	return
}

// Fulfill answers the pending request of ref with the oracle key. It runs as a
// transaction of the request owner.
func (p *Program) Fulfill(ctx context.Context, ref ledger.Address) (req *oracle.Request, err error) {
	if p.oracleKey == nil {
		return nil, ErrOracleKeyMissing
	}
	current, err := p.OracleRequest(ref)
	if err != nil {
		return nil, err
	}
	owner := current.Owner
	err = p.Execute(ctx, "fulfill", owner, func(env *Env) error {
		if req, err = env.Oracle.Fulfill(ref, p.oracleKey, env.Now); err != nil {
			return err
		}
		env.Emit(&Event{Kind: EventRandomnessFulfilled, Owner: owner, Oracle: addr(ref)})
		return nil
	})
	return
}

// StakeRecord returns the committed record of owner for asset.
func (p *Program) StakeRecord(owner, asset ledger.Address) (rec *staking.Record, err error) {
	err = p.view(func(env *Env) error {
		rec, err = env.Staking.Get(owner, asset)
		return err
	})
	return
}

// Pointer returns the committed lootbox of owner.
func (p *Program) Pointer(owner ledger.Address) (ptr *lootbox.Pointer, err error) {
	err = p.view(func(env *Env) error {
		ptr, err = env.Lootbox.Pointer(owner)
		return err
	})
	return
}

// Consumer returns the committed randomness consumer state of owner.
func (p *Program) Consumer(owner ledger.Address) (c *randomness.Consumer, err error) {
	err = p.view(func(env *Env) error {
		c, err = env.Randomness.Get(owner)
		return err
	})
	return
}

// OracleRequest returns the committed request account ref.
func (p *Program) OracleRequest(ref ledger.Address) (req *oracle.Request, err error) {
	err = p.view(func(env *Env) error {
		req, err = env.Oracle.Get(ref)
		return err
	})
	return
}

// VerifyRandomness checks the result of ref against the oracle key.
func (p *Program) VerifyRandomness(ref ledger.Address) (ok bool, err error) {
	pub := p.OraclePublicKey()
	if pub == nil {
		return false, ErrOracleKeyMissing
	}
	err = p.view(func(env *Env) error {
		ok, err = env.Oracle.Verify(ref, pub)
		return err
	})
	return
}

// TokenAccount returns the committed token account ref.
func (p *Program) TokenAccount(ref ledger.Address) (acc *token.Account, err error) {
	err = p.view(func(env *Env) error {
		acc, err = env.Tokens.Account(ref)
		return err
	})
	return
}

// RewardAccount returns the associated reward account of owner and its address.
func (p *Program) RewardAccount(owner ledger.Address) (ledger.Address, *token.Account, error) {
	ref := token.AssociatedAccount(owner, p.params.RewardMint)
	acc, err := p.TokenAccount(ref)
	return ref, acc, err
}
