// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/stakebox/stakebox/cache"
	"github.com/stakebox/stakebox/kv"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/stackedmap"
)

const storageBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	program ledger.Address
	key     ledger.Bytes32
}

func (k storageKey) bytes() []byte {
	b := make([]byte, 0, ledger.AddressLength+32)
	b = append(b, k.program[:]...)
	return append(b, k.key[:]...)
}

// Creator opens states over a committed kv store.
type Creator struct {
	store kv.Store
	cache *cache.LRU[storageKey, []byte]
}

// NewCreator creates a state creator. A cacheSize > 0 enables the slot cache.
func NewCreator(db kv.Store, cacheSize int) (*Creator, error) {
	c := &Creator{store: storageBucket.NewStore(db)}
	if cacheSize > 0 {
		lru, err := cache.NewLRU[storageKey, []byte](cacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = lru
	}
	return c, nil
}

// NewState opens a state on the latest committed storage.
func (c *Creator) NewState() *State {
	s := &State{creator: c}
	s.sm = stackedmap.New(s.committed)
	return s
}

// CacheStats returns the slot cache stats, or nil if cache is disabled.
func (c *Creator) CacheStats() *cache.Stats {
	if c.cache == nil {
		return nil
	}
	return c.cache.Stats()
}

func (c *Creator) load(key storageKey) ([]byte, error) {
	raw, err := c.store.Get(key.bytes())
	if err != nil {
		if c.store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

// State holds the storage view of one operation.
type State struct {
	creator *Creator
	sm      *stackedmap.StackedMap[storageKey, []byte]
}

func (s *State) committed(key storageKey) ([]byte, bool, error) {
	var (
		raw []byte
		err error
	)
	if s.creator.cache != nil {
		raw, err = s.creator.cache.GetOrLoad(key, s.creator.load)
	} else {
		raw, err = s.creator.load(key)
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// GetRawStorage returns the raw value of a program slot. An absent slot yields nil.
func (s *State) GetRawStorage(program ledger.Address, key ledger.Bytes32) ([]byte, error) {
	raw, _, err := s.sm.Get(storageKey{program, key})
	if err != nil {
		return nil, &Error{err}
	}
	return raw, nil
}

// SetRawStorage sets the raw value of a program slot. An empty value clears it.
func (s *State) SetRawStorage(program ledger.Address, key ledger.Bytes32, raw []byte) {
	s.sm.Put(storageKey{program, key}, raw)
}

// DecodeStorage gets the raw slot value and passes it to dec.
func (s *State) DecodeStorage(program ledger.Address, key ledger.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(program, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// EncodeStorage sets the slot to the value produced by enc.
func (s *State) EncodeStorage(program ledger.Address, key ledger.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(program, key, raw)
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 || revision > s.sm.Depth() {
		panic("invalid revision")
	}
	s.sm.PopTo(revision)
}

// Stage collects the changes made since the state was opened.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	var order []storageKey
	s.sm.Journal(func(key storageKey, value []byte) bool {
		if _, ok := changes[key]; !ok {
			order = append(order, key)
		}
		changes[key] = value
		return true
	})
	return &Stage{creator: s.creator, order: order, changes: changes}
}
