// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a user facing failure of an operation. The operation has no
// effect when it returns one.
type ErrRevert struct {
	kind    string
	message string
}

func New(kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Kind returns the stable name of the failure, e.g. "NotStaked".
func (e *ErrRevert) Kind() string {
	return e.kind
}

// staking
var (
	ErrAlreadyStaked  = New("AlreadyStaked", "asset is already staked")
	ErrNotInitialized = New("NotInitialized", "stake record is not initialized")
	ErrNotStaked      = New("NotStaked", "asset is not staked")
)

// lootbox
var (
	ErrInvalidLootboxTier      = New("InvalidLootboxTier", "invalid lootbox tier")
	ErrLootboxAlreadyClaimed   = New("LootboxAlreadyClaimed", "lootbox already opened, claim it first")
	ErrLootboxNotInitialized   = New("LootboxNotInitialized", "lootbox not initialized")
	ErrLootboxNotRedeemable    = New("LootboxNotRedeemable", "lootbox prize is not resolved yet")
	ErrInsufficientBurnBalance = New("InsufficientBurnBalance", "not enough reward tokens to burn")
)

// randomness
var (
	ErrInvalidOracleAccount = New("InvalidOracleAccount", "invalid oracle account")
	ErrOracleResultPending  = New("OracleResultPending", "oracle result is pending")
	ErrNothingToFulfill     = New("NothingToFulfill", "no pending randomness request")
)

// arithmetic, token and custody
var (
	ErrArithmeticOverflow   = New("ArithmeticOverflow", "arithmetic overflow")
	ErrAccountNotFound      = New("AccountNotFound", "token account not found")
	ErrAccountFrozen        = New("AccountFrozen", "token account is frozen")
	ErrAccountNotFrozen     = New("AccountNotFrozen", "token account is not frozen")
	ErrOwnerMismatch        = New("OwnerMismatch", "owner does not match")
	ErrMintMismatch         = New("MintMismatch", "account mint does not match")
	ErrInvalidDelegate      = New("InvalidDelegate", "invalid delegate")
	ErrInvalidMintAuthority = New("InvalidMintAuthority", "invalid mint authority")
	ErrInsufficientFunds    = New("InsufficientFunds", "insufficient funds")
)

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert carried by err, or "" if there is none.
func KindOf(err error) string {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return ""
}
