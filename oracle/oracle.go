// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package oracle is a verifiable randomness oracle. Each request account is
// owned by one user; a request clears the result and the oracle operator later
// fulfills it with an ECVRF output over the request.
package oracle

import (
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/vechain/go-ecvrf"

	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/ledger"
)

// Oracle is the randomness oracle as used by the staking program.
type Oracle interface {
	// Register creates the request account ref for owner.
	Register(ref, owner ledger.Address) error
	// Owner returns the owner of the request account ref.
	Owner(ref ledger.Address) (ledger.Address, error)
	// Request asks for a new result on ref on behalf of owner. The current
	// result is cleared.
	Request(ref, owner ledger.Address, seed ledger.Bytes32) error
	// Result returns the last fulfilled result of ref, zero while pending.
	Result(ref ledger.Address) (ledger.Bytes32, error)
}

// Request is a request account.
type Request struct {
	Owner       ledger.Address
	Counter     uint64 // number of requests made
	Seed        ledger.Bytes32
	Result      ledger.Bytes32
	Proof       []byte
	FulfilledAt uint64
}

// IsPending returns whether the last request awaits fulfillment.
func (r *Request) IsPending() bool {
	return r.Counter > 0 && r.Result.IsZero()
}

// Alpha returns the VRF input of the current request of ref.
func (r *Request) Alpha(ref ledger.Address) []byte {
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], r.Counter)
	return ledger.Blake2b(ref.Bytes(), r.Owner.Bytes(), counter[:], r.Seed.Bytes()).Bytes()
}

var slotRequests = ledger.BytesToBytes32([]byte("oracle-requests"))

// Native keeps request accounts in the storage of the oracle program.
type Native struct {
	requests *slot.Mapping[ledger.Address, *Request]
}

var _ Oracle = (*Native)(nil)

func New(sctx *slot.Context) *Native {
	return &Native{
		requests: slot.NewMapping[ledger.Address, *Request](sctx, slotRequests),
	}
}

// Get returns the request account ref.
func (n *Native) Get(ref ledger.Address) (*Request, error) {
	req, err := n.requests.Get(ref)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get oracle request")
	}
	if req == nil {
		return nil, reverts.ErrInvalidOracleAccount
	}
	return req, nil
}

func (n *Native) set(ref ledger.Address, req *Request) error {
	if err := n.requests.Set(ref, req); err != nil {
		return errors.Wrap(err, "failed to set oracle request")
	}
	return nil
}

func (n *Native) Register(ref, owner ledger.Address) error {
	if ref.IsZero() {
		return reverts.ErrInvalidOracleAccount
	}
	req, err := n.requests.Get(ref)
	if err != nil {
		return errors.Wrap(err, "failed to get oracle request")
	}
	if req != nil {
		if req.Owner != owner {
			return reverts.ErrInvalidOracleAccount
		}
		return nil
	}
	return n.set(ref, &Request{Owner: owner})
}

func (n *Native) Owner(ref ledger.Address) (ledger.Address, error) {
	req, err := n.Get(ref)
	if err != nil {
		return ledger.Address{}, err
	}
	return req.Owner, nil
}

func (n *Native) Request(ref, owner ledger.Address, seed ledger.Bytes32) error {
	req, err := n.Get(ref)
	if err != nil {
		return err
	}
	if req.Owner != owner {
		return reverts.ErrInvalidOracleAccount
	}
	if req.Counter == ^uint64(0) {
		return reverts.ErrArithmeticOverflow
	}
	req.Counter++
	req.Seed = seed
	req.Result = ledger.Bytes32{}
	req.Proof = nil
	req.FulfilledAt = 0
	return n.set(ref, req)
}

func (n *Native) Result(ref ledger.Address) (ledger.Bytes32, error) {
	req, err := n.Get(ref)
	if err != nil {
		return ledger.Bytes32{}, err
	}
	return req.Result, nil
}

// Fulfill answers the pending request of ref with the VRF output of key.
func (n *Native) Fulfill(ref ledger.Address, key *ecdsa.PrivateKey, now uint64) (*Request, error) {
	req, err := n.Get(ref)
	if err != nil {
		return nil, err
	}
	if !req.IsPending() {
		return nil, reverts.ErrNothingToFulfill
	}
	beta, proof, err := ecvrf.NewSecp256k1Sha256Tai().Prove(key, req.Alpha(ref))
	if err != nil {
		return nil, errors.Wrap(err, "prove")
	}
	return n.post(ref, req, ledger.BytesToBytes32(beta), proof, now)
}

// Post stores a result computed elsewhere for the pending request of ref.
func (n *Native) Post(ref ledger.Address, result ledger.Bytes32, proof []byte, now uint64) (*Request, error) {
	req, err := n.Get(ref)
	if err != nil {
		return nil, err
	}
	if !req.IsPending() {
		return nil, reverts.ErrNothingToFulfill
	}
	if result.IsZero() {
		return nil, errors.New("zero result")
	}
	return n.post(ref, req, result, proof, now)
}

func (n *Native) post(ref ledger.Address, req *Request, result ledger.Bytes32, proof []byte, now uint64) (*Request, error) {
	req.Result = result
	req.Proof = proof
	req.FulfilledAt = now
	if err := n.set(ref, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Verify checks the stored result of ref was produced by the holder of pub.
func (n *Native) Verify(ref ledger.Address, pub *ecdsa.PublicKey) (bool, error) {
	req, err := n.Get(ref)
	if err != nil {
		return false, err
	}
	if req.Result.IsZero() {
		return false, reverts.ErrOracleResultPending
	}
	beta, err := ecvrf.NewSecp256k1Sha256Tai().Verify(pub, req.Alpha(ref), req.Proof)
	if err != nil {
		return false, nil
	}
	return ledger.BytesToBytes32(beta) == req.Result, nil
}
