// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "main.db"), Options{16, 16})
	require.NoError(t, err)
	defer db.Close()

	before, err := db.Stats()
	require.NoError(t, err)

	batch := db.NewBatch()
	for i := range 64 {
		require.NoError(t, batch.Put(fmt.Appendf(nil, "key-%d", i), make([]byte, 128)))
	}
	require.NoError(t, batch.Write())

	after, err := db.Stats()
	require.NoError(t, err)
	assert.Greater(t, after.IOWrite, before.IOWrite, "synced batch reaches the journal")
	assert.Zero(t, after.AliveIterators)

	it := db.db.NewIterator(nil, nil)
	during, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, int32(1), during.AliveIterators)
	it.Release()
}

func TestReportStatsDeltas(t *testing.T) {
	prev := reportStats(Stats{}, Stats{Compactions: 3, WriteDelays: 1})
	assert.Equal(t, uint64(3), prev.Compactions)

	// a reopened db restarts its counters
	prev = reportStats(prev, Stats{Compactions: 1})
	assert.Equal(t, uint64(1), prev.Compactions)
}

func TestCollectMetricsStops(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		db.CollectMetrics(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}
}
