// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"bytes"
	"slices"
	"sync"

	"github.com/stakebox/stakebox/ledger"
)

// ownerLocks serializes operations per owner. Entries are dropped once no
// operation of the owner is in flight.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[ledger.Address]*ownerLock
}

type ownerLock struct {
	sync.Mutex
	refs int
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[ledger.Address]*ownerLock)}
}

// Lock blocks until owner is free and returns the unlock func.
func (l *ownerLocks) Lock(owner ledger.Address) func() {
	l.mu.Lock()
	lock, ok := l.locks[owner]
	if !ok {
		lock = &ownerLock{}
		l.locks[owner] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, owner)
		}
		l.mu.Unlock()
	}
}

// LockAll locks every key, in byte order so that two callers sharing keys
// cannot deadlock. Duplicates are locked once.
func (l *ownerLocks) LockAll(keys ...ledger.Address) func() {
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, func(a, b ledger.Address) int { return bytes.Compare(a[:], b[:]) })
	sorted = slices.Compact(sorted)

	unlocks := make([]func(), 0, len(sorted))
	for _, key := range sorted {
		unlocks = append(unlocks, l.Lock(key))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

func (l *ownerLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
