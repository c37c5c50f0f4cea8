// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"errors"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/builtin/staking"
)

func TestAccrueRandomRecords(t *testing.T) {
	f := fuzz.New().NilChance(0)

	for i := 0; i < 2000; i++ {
		var (
			rec  staking.Record
			now  uint64
			rate uint64
		)
		f.Fuzz(&rec)
		f.Fuzz(&now)
		f.Fuzz(&rate)
		// keep a share of the cases in a range that does not overflow
		if i%2 == 0 {
			rec.TotalEarned >>= 8
			rec.LastRedeemTime >>= 32
			now >>= 31
			rate >>= 40
		}

		reward, total, err := Accrue(&rec, now, rate)
		if err != nil {
			assert.True(t, errors.Is(err, reverts.ErrArithmeticOverflow), "unexpected error %v", err)
			continue
		}
		assert.Equal(t, rec.TotalEarned+reward, total)
		assert.GreaterOrEqual(t, total, rec.TotalEarned)
		if now <= rec.LastRedeemTime {
			assert.Zero(t, reward)
		}
	}
}

// Redeeming at some midpoint never pays more than redeeming once at the end.
func TestAccrueSplitNeverPaysMore(t *testing.T) {
	f := fuzz.New()

	for i := 0; i < 1000; i++ {
		var start, mid, end, rate uint32
		f.Fuzz(&start)
		f.Fuzz(&mid)
		f.Fuzz(&end)
		f.Fuzz(&rate)
		a, b, c := uint64(start), uint64(start)+uint64(mid), uint64(start)+uint64(mid)+uint64(end)

		once, _, err := Accrue(&staking.Record{LastRedeemTime: a}, c, uint64(rate))
		require.NoError(t, err)

		first, _, err := Accrue(&staking.Record{LastRedeemTime: a}, b, uint64(rate))
		require.NoError(t, err)
		second, _, err := Accrue(&staking.Record{LastRedeemTime: b}, c, uint64(rate))
		require.NoError(t, err)

		assert.LessOrEqual(t, first+second, once)
	}
}
