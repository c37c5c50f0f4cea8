// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package oracle

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/test/datagen"
	"github.com/stakebox/stakebox/test/teststate"
)

func newNative(t *testing.T) *Native {
	return New(teststate.Context(teststate.New(t), ledger.OracleProgram))
}

func TestRegister(t *testing.T) {
	n := newNative(t)
	ref, owner := datagen.RandAddress(), datagen.RandAddress()

	require.NoError(t, n.Register(ref, owner))
	require.NoError(t, n.Register(ref, owner), "idempotent for the same owner")
	assert.ErrorIs(t, n.Register(ref, datagen.RandAddress()), reverts.ErrInvalidOracleAccount)
	assert.ErrorIs(t, n.Register(ledger.Address{}, owner), reverts.ErrInvalidOracleAccount)

	req, err := n.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, owner, req.Owner)
	assert.False(t, req.IsPending())

	_, err = n.Get(datagen.RandAddress())
	assert.ErrorIs(t, err, reverts.ErrInvalidOracleAccount)
	_, err = n.Result(datagen.RandAddress())
	assert.ErrorIs(t, err, reverts.ErrInvalidOracleAccount)
	assert.ErrorIs(t, n.Request(datagen.RandAddress(), owner, ledger.Bytes32{}), reverts.ErrInvalidOracleAccount)

	got, err := n.Owner(ref)
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestRequestFulfillVerify(t *testing.T) {
	n := newNative(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	ref, owner := datagen.RandAddress(), datagen.RandAddress()
	require.NoError(t, n.Register(ref, owner))

	_, err = n.Fulfill(ref, key, 1)
	assert.ErrorIs(t, err, reverts.ErrNothingToFulfill)

	require.NoError(t, n.Request(ref, owner, datagen.RandBytes32()))
	result, err := n.Result(ref)
	require.NoError(t, err)
	assert.True(t, result.IsZero(), "pending")

	_, err = n.Verify(ref, &key.PublicKey)
	assert.ErrorIs(t, err, reverts.ErrOracleResultPending)

	req, err := n.Fulfill(ref, key, 42)
	require.NoError(t, err)
	assert.False(t, req.Result.IsZero())
	assert.Equal(t, uint64(42), req.FulfilledAt)
	assert.Equal(t, uint64(1), req.Counter)

	result, err = n.Result(ref)
	require.NoError(t, err)
	assert.Equal(t, req.Result, result)

	ok, err := n.Verify(ref, &key.PublicKey)
	require.NoError(t, err)
	assert.True(t, ok)

	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	ok, err = n.Verify(ref, &other.PublicKey)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = n.Fulfill(ref, key, 43)
	assert.ErrorIs(t, err, reverts.ErrNothingToFulfill, "already fulfilled")
}

func TestNewRequestChangesResult(t *testing.T) {
	n := newNative(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	ref, owner := datagen.RandAddress(), datagen.RandAddress()
	require.NoError(t, n.Register(ref, owner))

	seed := datagen.RandBytes32()
	require.NoError(t, n.Request(ref, owner, seed))
	first, err := n.Fulfill(ref, key, 1)
	require.NoError(t, err)
	firstResult := first.Result

	// same seed, the counter still makes a new input
	require.NoError(t, n.Request(ref, owner, seed))
	req, err := n.Get(ref)
	require.NoError(t, err)
	assert.True(t, req.IsPending())
	assert.Empty(t, req.Proof)
	assert.Zero(t, req.FulfilledAt)

	second, err := n.Fulfill(ref, key, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.Counter)
	assert.NotEqual(t, firstResult, second.Result)
}

func TestRequestByOtherOwner(t *testing.T) {
	n := newNative(t)
	ref, owner := datagen.RandAddress(), datagen.RandAddress()
	require.NoError(t, n.Register(ref, owner))

	assert.ErrorIs(t, n.Request(ref, datagen.RandAddress(), datagen.RandBytes32()), reverts.ErrInvalidOracleAccount)

	req, err := n.Get(ref)
	require.NoError(t, err)
	assert.Zero(t, req.Counter, "request left untouched")
	assert.False(t, req.IsPending())
}

func TestAlpha(t *testing.T) {
	ref := datagen.RandAddress()
	req := &Request{Owner: datagen.RandAddress(), Counter: 1, Seed: datagen.RandBytes32()}
	a := req.Alpha(ref)
	assert.Len(t, a, 32)

	req.Counter++
	assert.NotEqual(t, a, req.Alpha(ref))
	assert.NotEqual(t, req.Alpha(ref), req.Alpha(datagen.RandAddress()))
}

func TestPost(t *testing.T) {
	n := newNative(t)
	ref, owner := datagen.RandAddress(), datagen.RandAddress()
	require.NoError(t, n.Register(ref, owner))

	result := ledger.Bytes32{7}
	_, err := n.Post(ref, result, nil, 1)
	assert.ErrorIs(t, err, reverts.ErrNothingToFulfill)

	require.NoError(t, n.Request(ref, owner, ledger.Bytes32{}))
	_, err = n.Post(ref, ledger.Bytes32{}, nil, 1)
	assert.EqualError(t, err, "zero result")

	req, err := n.Post(ref, result, []byte{1}, 3)
	require.NoError(t, err)
	assert.Equal(t, result, req.Result)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	ok, err := n.Verify(ref, &key.PublicKey)
	require.NoError(t, err)
	assert.False(t, ok, "bogus proof")
}
