// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/ledger"
)

// Status of a stake record.
type Status uint8

const (
	StatusUnstaked Status = iota
	StatusStaked
)

func (s Status) String() string {
	switch s {
	case StatusUnstaked:
		return "unstaked"
	case StatusStaked:
		return "staked"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Record tracks one collectible of one owner across stake cycles.
type Record struct {
	CustodyAsset   ledger.Address // the owner's token account holding the collectible
	Owner          ledger.Address
	Status         Status
	StakeStartTime uint64
	LastRedeemTime uint64 // never decreases
	TotalEarned    uint64 // rewards minted so far, never decreases
	Initialized    bool
}

// IsStaked returns whether the collectible is currently in custody.
func (r *Record) IsStaked() bool {
	return r.Initialized && r.Status == StatusStaked
}

var slotRecords = ledger.BytesToBytes32([]byte("stake-records"))

// RecordKey is the storage key of the record of owner for asset.
func RecordKey(owner, asset ledger.Address) ledger.Bytes32 {
	return ledger.Blake2b(owner.Bytes(), asset.Bytes())
}

// Store persists stake records.
type Store struct {
	records *slot.Mapping[ledger.Bytes32, *Record]
}

func NewStore(sctx *slot.Context) *Store {
	return &Store{
		records: slot.NewMapping[ledger.Bytes32, *Record](sctx, slotRecords),
	}
}

// Get returns the record of owner for asset, nil if it never staked.
func (s *Store) Get(owner, asset ledger.Address) (*Record, error) {
	rec, err := s.records.Get(RecordKey(owner, asset))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake record")
	}
	return rec, nil
}

// Set writes rec under its owner and asset.
func (s *Store) Set(rec *Record) error {
	if err := s.records.Set(RecordKey(rec.Owner, rec.CustodyAsset), rec); err != nil {
		return errors.Wrap(err, "failed to set stake record")
	}
	return nil
}
