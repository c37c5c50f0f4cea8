// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package teststate builds in-memory states for tests.
package teststate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/slot"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/lvldb"
	"github.com/stakebox/stakebox/state"
)

// NewCreator returns a state creator over a fresh in-memory database.
func NewCreator(t testing.TB) *state.Creator {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	creator, err := state.NewCreator(db, 256)
	require.NoError(t, err)
	return creator
}

// New returns an empty state.
func New(t testing.TB) *state.State {
	return NewCreator(t).NewState()
}

// Context returns a slot context of program over st.
func Context(st *state.State, program ledger.Address) *slot.Context {
	return slot.NewContext(program, st, nil)
}
