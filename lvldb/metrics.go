// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"context"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/stakebox/stakebox/log"
	"github.com/stakebox/stakebox/metrics"
)

var (
	logger = log.WithContext("pkg", "lvldb")

	metricBatchSize = metrics.LazyLoadHistogramVec("lvldb_batch_ops", []string{"kind"}, []int64{
		0, 1, 2, 4, 8, 16, 32, 64, 128, 256,
	})
	metricIO          = metrics.LazyLoadGauge("lvldb_io_bytes")
	metricCompactions = metrics.LazyLoadCounter("lvldb_compactions_total")
	metricWriteDelays = metrics.LazyLoadCounter("lvldb_write_delays_total")
	metricCacheBytes  = metrics.LazyLoadGauge("lvldb_block_cache_bytes")
	metricOpenTables  = metrics.LazyLoadGauge("lvldb_open_tables")
)

// Stats is a snapshot of the counters the db keeps since it was opened.
type Stats struct {
	IORead, IOWrite uint64
	Compactions     uint64
	WriteDelays     int64
	BlockCacheBytes int
	OpenedTables    int
	AliveSnapshots  int32
	AliveIterators  int32
	LevelSizes      []int64
}

func (ldb *LevelDB) Stats() (Stats, error) {
	var s leveldb.DBStats
	if err := ldb.db.Stats(&s); err != nil {
		return Stats{}, err
	}
	return Stats{
		IORead:          s.IORead,
		IOWrite:         s.IOWrite,
		Compactions:     uint64(s.MemComp) + uint64(s.Level0Comp) + uint64(s.NonLevel0Comp) + uint64(s.SeekComp),
		WriteDelays:     int64(s.WriteDelayCount),
		BlockCacheBytes: s.BlockCacheSize,
		OpenedTables:    s.OpenedTablesCount,
		AliveSnapshots:  s.AliveSnapshots,
		AliveIterators:  s.AliveIterators,
		LevelSizes:      append([]int64(nil), s.LevelSizes...),
	}, nil
}

// CollectMetrics reports db stats every interval until ctx is done.
func (ldb *LevelDB) CollectMetrics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prev Stats
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s, err := ldb.Stats()
			if err != nil {
				logger.Debug("failed to read db stats", "err", err)
				continue
			}
			prev = reportStats(prev, s)
		}
	}
}

// reportStats publishes s, counters as deltas over prev, and returns s.
func reportStats(prev, s Stats) Stats {
	metricIO().Set(int64(s.IORead + s.IOWrite))
	if s.Compactions > prev.Compactions {
		metricCompactions().Add(int64(s.Compactions - prev.Compactions))
	}
	if s.WriteDelays > prev.WriteDelays {
		metricWriteDelays().Add(s.WriteDelays - prev.WriteDelays)
	}
	metricCacheBytes().Set(int64(s.BlockCacheBytes))
	metricOpenTables().Set(int64(s.OpenedTables))
	return s
}
