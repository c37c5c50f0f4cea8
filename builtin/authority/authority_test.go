// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakebox/stakebox/ledger"
)

func TestAuthorities(t *testing.T) {
	program := ledger.BytesToAddress([]byte("program"))
	a := New(program)

	assert.Equal(t, program, a.Program())
	assert.Equal(t, ledger.DeriveAddress(program, []byte("authority")), a.Custody())
	assert.Equal(t, ledger.DeriveAddress(program, []byte("mint")), a.Mint())
	assert.NotEqual(t, a.Custody(), a.Mint())

	// stable for the same program, distinct across programs
	assert.Equal(t, a.Custody(), New(program).Custody())
	other := New(ledger.BytesToAddress([]byte("other")))
	assert.NotEqual(t, a.Custody(), other.Custody())
	assert.NotEqual(t, a.Mint(), other.Mint())
}
