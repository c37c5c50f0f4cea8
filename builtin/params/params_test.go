// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/ledger"
)

func testParams() *Params {
	catalog := make([]ledger.Address, CatalogSize)
	for i := range catalog {
		catalog[i] = ledger.BytesToAddress([]byte{'p', byte(i)})
	}
	return &Params{
		ProgramID:      ledger.BytesToAddress([]byte("program")),
		RewardMint:     ledger.BytesToAddress([]byte("reward")),
		RatePerDay:     1000,
		RewardDecimals: 2,
		Catalog:        catalog,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, testParams().Validate())

	tests := []struct {
		name   string
		modify func(p *Params)
		err    string
	}{
		{"no program", func(p *Params) { p.ProgramID = ledger.Address{} }, "program id is zero"},
		{"no mint", func(p *Params) { p.RewardMint = ledger.Address{} }, "reward mint is zero"},
		{"short catalog", func(p *Params) { p.Catalog = p.Catalog[:4] }, "prize catalog must have 5 entries, got 4"},
		{"duplicate prize", func(p *Params) { p.Catalog[4] = p.Catalog[0] }, "listed twice"},
		{"zero prize", func(p *Params) { p.Catalog[2] = ledger.Address{} }, "prize 2 is zero"},
		{"decimals", func(p *Params) { p.RewardDecimals = 20 }, "reward decimals 20 too large"},
		{"mode", func(p *Params) { p.Mode = 7 }, "invalid lootbox mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.modify(p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestTierUnit(t *testing.T) {
	p := testParams()
	unit, ok := p.TierUnit()
	assert.True(t, ok)
	assert.Equal(t, uint64(100), unit)

	p.RewardDecimals = 0
	unit, ok = p.TierUnit()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), unit)

	p.RewardDecimals = 19
	unit, ok = p.TierUnit()
	assert.True(t, ok)
	assert.Equal(t, uint64(10_000_000_000_000_000_000), unit)

	p.RewardDecimals = 20
	_, ok = p.TierUnit()
	assert.False(t, ok)
}

func TestMode(t *testing.T) {
	for _, m := range []Mode{ModeImmediate, ModeDeferred} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseMode("later")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestPrize(t *testing.T) {
	p := testParams()
	assert.Equal(t, p.Catalog[0], p.Prize(0))
	assert.Equal(t, p.Catalog[3], p.Prize(13))
}
