// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/ledger"
)

// Stage abstracts the changes of a state, ready to be committed.
type Stage struct {
	creator *Creator
	order   []storageKey
	changes map[storageKey][]byte
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.order)
}

// Hash computes the digest of the changes, independent of the write order.
func (s *Stage) Hash() ledger.Bytes32 {
	keys := make([][]byte, 0, len(s.order))
	for _, k := range s.order {
		keys = append(keys, k.bytes())
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })

	return ledger.Blake2bFn(func(w io.Writer) {
		for _, k := range keys {
			var sk storageKey
			copy(sk.program[:], k)
			copy(sk.key[:], k[ledger.AddressLength:])
			w.Write(k)
			w.Write(s.changes[sk])
		}
	})
}

// Commit writes all changes in one atomic batch.
func (s *Stage) Commit() error {
	if len(s.order) == 0 {
		return nil
	}
	batch := s.creator.store.NewBatch()
	for _, k := range s.order {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = batch.Delete(k.bytes())
		} else {
			err = batch.Put(k.bytes(), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	if c := s.creator.cache; c != nil {
		for _, k := range s.order {
			if v := s.changes[k]; len(v) == 0 {
				c.Add(k, nil)
			} else {
				c.Add(k, v)
			}
		}
	}
	return nil
}
