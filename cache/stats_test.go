// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	cs := &Stats{}
	assert.Zero(t, cs.HitRate())

	cs.Hit()
	cs.Miss()
	changed, hit, miss := cs.Stats()
	assert.True(t, changed)
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
	assert.InDelta(t, 0.5, cs.HitRate(), 1e-9)

	changed, _, _ = cs.Stats()
	assert.False(t, changed, "rate unchanged")

	cs.Hit()
	cs.Hit()
	changed, _, _ = cs.Stats()
	assert.True(t, changed)
	assert.InDelta(t, 0.75, cs.HitRate(), 1e-9)
}
